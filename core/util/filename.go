package util

import (
	"bytes"
	"regexp"
	"strings"
)

// index/IndexFileNames.java

/*
Returns a file name that includes the given segment name, the
optional codec suffix and extension. This is used by codecs to name
the files they create within a segment.
*/
func SegmentFileName(name, suffix, ext string) string {
	if len(ext) > 0 || len(suffix) > 0 {
		// assert ext[0] != '.'
		var buffer bytes.Buffer
		buffer.WriteString(name)
		if len(suffix) > 0 {
			buffer.WriteString("_")
			buffer.WriteString(suffix)
		}
		if len(ext) > 0 {
			buffer.WriteString(".")
			buffer.WriteString(ext)
		}
		return buffer.String()
	}
	return name
}

func indexOfSegmentName(filename string) int {
	// If it is a .del file, there's an '_' after the first character
	if idx := strings.Index(filename[1:], "_"); idx >= 0 {
		return idx + 1
	}
	// If it's not, strip everything that's before the '.'
	return strings.Index(filename, ".")
}

/* Strips the segment name out of the given file name. */
func StripSegmentName(filename string) string {
	if idx := indexOfSegmentName(filename); idx != -1 {
		return filename[idx:]
	}
	return filename
}

/* Parses the segment name out of the given file name. */
func ParseSegmentName(filename string) string {
	if idx := indexOfSegmentName(filename); idx != -1 {
		return filename[0:idx]
	}
	return filename
}

/* Removes the extension (anything after the first '.') from the file name. */
func StripExtension(filename string) string {
	if idx := strings.Index(filename, "."); idx != -1 {
		return filename[0:idx]
	}
	return filename
}

/* All files created by codecs must match this pattern. */
var CODEC_FILE_PATTERN = regexp.MustCompile("_[a-z0-9]+(_.*)?\\..*")
