package index

import (
	"errors"
	"fmt"

	"github.com/ironsweet/gosegment/core/util"
)

// index/TermsEnum.java

/*
Iterator to seek, or step through terms to obtain frequency
information, or for the current term.

Term enumerations are always ordered by byte-lexicographic order of
the term bytes. Each term in the enumeration is greater than the one
before it.

The TermsEnum is unpositioned when you first obtain it and you must
first successfully call Next() or one of the seek methods. Calling
Term(), Ord(), DocFreq(), TotalTermFreq() or Docs() while
unpositioned or exhausted is a contract violation and fails fast
rather than returning stale data.

A TermsEnum may be used from only one goroutine; obtain a fresh
instance per goroutine instead of sharing a live cursor.
*/
type TermsEnum interface {
	// Increments the enumeration to the next term, returning it, or
	// nil if the end of the enumeration is reached.
	Next() (term []byte, err error)
	/* Seeks to the specified term, if it exists, or to the
	next (ceiling) term. Returns SeekStatus to
	indicate whether exact term was found, a different
	term was found, or EOF was hit. The target term may
	be before or after the current term: these are full re-seek
	semantics, not a forward scan. If this returns
	SEEK_STATUS_END, the enum is unpositioned. */
	SeekCeil(text []byte) SeekStatus
	/* Attempts to seek to the exact term, returning
	true if the term is found. If this returns false, the
	enum is unpositioned. For some codecs, SeekExact may
	be substantially faster than SeekCeil. */
	SeekExact(text []byte) (ok bool, err error)
	/* Seeks to the specified term by ordinal (position) as
	previously returned by Ord(). The target ord
	may be before or after the current ord, and must be
	within bounds. This is an optional capability: implementations
	unable to support ordinal access signal it instead of silently
	misbehaving. */
	SeekExactByOrd(ord int64) error
	/* Expert: seeks a specific position by TermState previously
	obtained from TermState(). Callers should maintain the TermState
	to use this method. Low-level implementations may position the
	TermsEnum without re-seeking the term dictionary.

	Seeking by TermState should only be used iff the state was
	obtained from the same instance, on the same field. Using an
	incompatible TermState is undefined behavior and is not checked
	at runtime. If the given term does not exist, this fails with an
	argument error; it never succeeds silently with a wrong position. */
	SeekExactWithState(text []byte, state TermState) error
	/* Returns current term. Do not call this when the enum
	is unpositioned. */
	Term() []byte
	/* Returns ordinal position for current term. This is an
	optional capability. Do not call this when the enum is
	unpositioned. */
	Ord() int64
	/* Returns the number of documents containing the current
	term. Do not call this when the enum is unpositioned. */
	DocFreq() (df int, err error)
	/* Returns the total number of occurrences of this term
	across all documents (the sum of the Freq() for each
	doc that has this term). This will be -1 if the
	codec doesn't support this measure. Note that, like
	other term measures, this measure does not take
	deleted documents into account. */
	TotalTermFreq() (tf int64, err error)
	/* Get DocsEnum for the current term, restricted by liveDocs and
	optionally reusing a previous enum. Do not call this when the
	enum is unpositioned. This method will not return nil. */
	Docs(liveDocs util.Bits, reuse DocsEnum) (de DocsEnum, err error)
	/* Expert: returns the TermsEnum internal state to position the
	TermsEnum without re-seeking the term dictionary. Codecs without
	snapshot support return a stub that fails on restore. */
	TermState() (ts TermState, err error)
}

type SeekStatus int

const (
	// The term was not found, and the end of iteration was hit.
	SEEK_STATUS_END = SeekStatus(1)
	// The precise term was found.
	SEEK_STATUS_FOUND = SeekStatus(2)
	// A different term was found after the requested term.
	SEEK_STATUS_NOT_FOUND = SeekStatus(3)
)

func (ss SeekStatus) String() string {
	switch ss {
	case SEEK_STATUS_END:
		return "END"
	case SEEK_STATUS_FOUND:
		return "FOUND"
	case SEEK_STATUS_NOT_FOUND:
		return "NOT_FOUND"
	}
	return fmt.Sprintf("SeekStatus(%v)", int(ss))
}

/*
TermsEnumImpl provides the derivable parts of a TermsEnum over the
primitive operations of a concrete implementation.
*/
type TermsEnumImpl struct {
	TermsEnum
}

func NewTermsEnumImpl(self TermsEnum) *TermsEnumImpl {
	return &TermsEnumImpl{self}
}

func (e *TermsEnumImpl) SeekExact(text []byte) (bool, error) {
	return e.SeekCeil(text) == SEEK_STATUS_FOUND, nil
}

func (e *TermsEnumImpl) SeekExactWithState(text []byte, state TermState) error {
	ok, err := e.SeekExact(text)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New(fmt.Sprintf("term %v does not exist", text))
	}
	return nil
}

func (e *TermsEnumImpl) SeekExactByOrd(ord int64) error {
	panic("this codec does not support seeking by ord")
}

func (e *TermsEnumImpl) TermState() (TermState, error) {
	return EMPTY_TERM_STATE, nil
}

/*
An empty TermsEnum for quickly returning an empty instance, e.g. in
multi-term query rewriting over a field with no terms. The enum can
never be positioned: SeekCeil always answers END, seeking by ordinal
is a no-op, and every accessor is a contract violation.
*/
var EMPTY_TERMS_ENUM TermsEnum = newEmptyTermsEnum()

type EmptyTermsEnum struct {
	*TermsEnumImpl
}

func newEmptyTermsEnum() *EmptyTermsEnum {
	e := &EmptyTermsEnum{}
	e.TermsEnumImpl = NewTermsEnumImpl(e)
	return e
}

func (e *EmptyTermsEnum) Next() ([]byte, error) {
	return nil, nil
}

func (e *EmptyTermsEnum) SeekCeil(term []byte) SeekStatus {
	return SEEK_STATUS_END
}

func (e *EmptyTermsEnum) SeekExactByOrd(ord int64) error {
	return nil
}

func (e *EmptyTermsEnum) Term() []byte {
	panic("this method should never be called")
}

func (e *EmptyTermsEnum) Ord() int64 {
	panic("this method should never be called")
}

func (e *EmptyTermsEnum) DocFreq() (int, error) {
	panic("this method should never be called")
}

func (e *EmptyTermsEnum) TotalTermFreq() (int64, error) {
	panic("this method should never be called")
}

func (e *EmptyTermsEnum) Docs(liveDocs util.Bits, reuse DocsEnum) (DocsEnum, error) {
	panic("this method should never be called")
}

func (e *EmptyTermsEnum) TermState() (TermState, error) {
	panic("this method should never be called")
}

func (e *EmptyTermsEnum) SeekExactWithState(term []byte, state TermState) error {
	panic("this method should never be called")
}
