package util

import (
	"io"
)

/* An error that carries secondary errors suppressed while handling it. */
type CompoundError struct {
	errs []error
}

func (e *CompoundError) Error() string {
	return e.errs[0].Error()
}

/*
Closes all given closers. Some of the closers may be nil; they are
ignored. After everything is closed, the prior error is returned if
non-nil, otherwise the first error raised by a Close.
*/
func CloseWhileHandlingError(priorErr error, objects ...io.Closer) error {
	var th error = nil

	for _, object := range objects {
		if object == nil {
			continue
		}
		t := safeClose(object)
		if t == nil {
			continue
		}
		if th == nil {
			th = t
		}
	}

	if priorErr != nil {
		return priorErr
	}
	return th
}

/* Closes all given closers, suppressing any error. */
func CloseWhileSuppressingError(objects ...io.Closer) {
	for _, object := range objects {
		if object == nil {
			continue
		}
		safeClose(object)
	}
}

/* Closes all given closers, returning the first error raised. */
func Close(objects ...io.Closer) error {
	var th error = nil

	for _, object := range objects {
		if object == nil {
			continue
		}
		if t := safeClose(object); t != nil && th == nil {
			th = t
		}
	}

	return th
}

func safeClose(obj io.Closer) (err error) {
	if obj != nil {
		err = obj.Close()
	}
	return
}

type FileDeleter interface {
	DeleteFile(name string) error
}

/*
Deletes all given files, suppressing all thrown errors.

Note that the files should not be nil.
*/
func DeleteFilesIgnoringErrors(dir FileDeleter, files ...string) {
	for _, name := range files {
		dir.DeleteFile(name) // ignore error
	}
}
