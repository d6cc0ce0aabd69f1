package index

import (
	"crypto/rand"
)

// index/SegmentInfo.java

/* Length in bytes of a segment id. */
const ID_LENGTH = 16

/*
Information about a segment such as its name and id. A segment is an
immutable, independently-searchable unit of the index; all of its
files share one identity.
*/
type SegmentInfo struct {
	// Unique segment name in the directory
	Name string
	// Id that uniquely identifies this segment
	id []byte
}

func NewSegmentInfo(name string, id []byte) *SegmentInfo {
	assert2(id == nil || len(id) == ID_LENGTH, "invalid id: %v bytes", len(id))
	return &SegmentInfo{Name: name, id: id}
}

/*
Return the id that uniquely identifies this segment, or nil for
pre-id segments.
*/
func (si *SegmentInfo) ID() []byte {
	if si.id == nil {
		return nil
	}
	clone := make([]byte, len(si.id))
	copy(clone, si.id)
	return clone
}

/* Generates a new random 128-bit segment id. */
func GenerateSegmentID() []byte {
	id := make([]byte, ID_LENGTH)
	_, err := rand.Read(id)
	assert2(err == nil, "random id generation failed: %v", err)
	return id
}
