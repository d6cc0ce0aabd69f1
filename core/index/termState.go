package index

// index/TermState.java

/*
Encapsulates all required internal state to position the associated
TermsEnum without re-seeking.

A TermState is an opaque capsule: it is only valid against the same
field and enumerator instance that produced it. Reuse across a
different field or enumerator is undefined and is the caller's
responsibility to avoid.
*/
type TermState interface {
	// Copies the content of the given TermState to this instance.
	CopyFrom(other TermState)
	Clone() TermState
}

/*
The stub TermState returned by enumerators that cannot snapshot their
position. Restoring from it is a contract violation.
*/
var EMPTY_TERM_STATE = &EmptyTermState{}

type EmptyTermState struct{}

func (ts *EmptyTermState) CopyFrom(other TermState) {
	panic("this TermState cannot be restored from")
}

func (ts *EmptyTermState) Clone() TermState {
	return ts
}

// index/OrdTermState.java

/*
An ordinal-based TermState. Used by enumerators whose terms are
addressable by ordinal.
*/
type OrdTermState struct {
	// Term ordinal, i.e. its position in the full list of sorted terms.
	Ord int64
}

func (ts *OrdTermState) CopyFrom(other TermState) {
	o, ok := other.(*OrdTermState)
	assert2(ok, "can not copy from %v", other)
	ts.Ord = o.Ord
}

func (ts *OrdTermState) Clone() TermState {
	return &OrdTermState{Ord: ts.Ord}
}
