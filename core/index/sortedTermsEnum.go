package index

import (
	"bytes"
	"sort"

	"github.com/ironsweet/gosegment/core/util"
)

/*
TermData is one entry of an in-memory term dictionary: the term bytes
and its aggregated statistics, plus the postings (parallel doc/freq
slices, docs ascending).
*/
type TermData struct {
	Term          []byte
	DocFreq       int
	TotalTermFreq int64
	Docs          []int
	Freqs         []int
}

/*
SortedTermsEnum is a TermsEnum over an in-memory sorted term
dictionary. It supports the full surface: ordinal seeking and
TermState snapshots in addition to the byte-wise seeks.

The cursor is the ordinal of the current term; -1 means unpositioned
and len(terms) means exhausted.
*/
type SortedTermsEnum struct {
	*TermsEnumImpl
	terms []*TermData
	ord   int64
}

/*
NewSortedTermsEnum creates an enum over the given terms. The terms
must be in strictly increasing byte-lexicographic order; out-of-order
or duplicate input is an argument error.
*/
func NewSortedTermsEnum(terms []*TermData) *SortedTermsEnum {
	for i := 1; i < len(terms); i++ {
		assert2(bytes.Compare(terms[i-1].Term, terms[i].Term) < 0,
			"terms out of order: %v >= %v", terms[i-1].Term, terms[i].Term)
	}
	e := &SortedTermsEnum{terms: terms, ord: -1}
	e.TermsEnumImpl = NewTermsEnumImpl(e)
	return e
}

func (e *SortedTermsEnum) current() *TermData {
	assert2(e.ord >= 0 && e.ord < int64(len(e.terms)), "TermsEnum is unpositioned")
	return e.terms[e.ord]
}

func (e *SortedTermsEnum) Next() ([]byte, error) {
	if e.ord >= int64(len(e.terms))-1 {
		e.ord = int64(len(e.terms))
		return nil, nil
	}
	e.ord++
	return e.terms[e.ord].Term, nil
}

func (e *SortedTermsEnum) SeekCeil(text []byte) SeekStatus {
	i := sort.Search(len(e.terms), func(i int) bool {
		return bytes.Compare(e.terms[i].Term, text) >= 0
	})
	if i == len(e.terms) {
		e.ord = int64(len(e.terms))
		return SEEK_STATUS_END
	}
	e.ord = int64(i)
	if bytes.Equal(e.terms[i].Term, text) {
		return SEEK_STATUS_FOUND
	}
	return SEEK_STATUS_NOT_FOUND
}

func (e *SortedTermsEnum) SeekExact(text []byte) (bool, error) {
	switch e.SeekCeil(text) {
	case SEEK_STATUS_FOUND:
		return true, nil
	case SEEK_STATUS_NOT_FOUND:
		e.ord = -1
	}
	return false, nil
}

func (e *SortedTermsEnum) SeekExactByOrd(ord int64) error {
	assert2(ord >= 0 && ord < int64(len(e.terms)), "ord out of bounds: %v", ord)
	e.ord = ord
	return nil
}

func (e *SortedTermsEnum) SeekExactWithState(text []byte, state TermState) error {
	ts, ok := state.(*OrdTermState)
	assert2(ok, "can not restore from %v", state)
	if err := e.SeekExactByOrd(ts.Ord); err != nil {
		return err
	}
	assert2(bytes.Equal(e.Term(), text), "state does not match term %v", text)
	return nil
}

func (e *SortedTermsEnum) Term() []byte {
	return e.current().Term
}

func (e *SortedTermsEnum) Ord() int64 {
	e.current()
	return e.ord
}

func (e *SortedTermsEnum) DocFreq() (int, error) {
	return e.current().DocFreq, nil
}

func (e *SortedTermsEnum) TotalTermFreq() (int64, error) {
	return e.current().TotalTermFreq, nil
}

func (e *SortedTermsEnum) Docs(liveDocs util.Bits, reuse DocsEnum) (DocsEnum, error) {
	t := e.current()
	de, ok := reuse.(*sliceDocsEnum)
	if !ok {
		de = newSliceDocsEnum()
	}
	de.reset(t.Docs, t.Freqs, liveDocs)
	return de, nil
}

func (e *SortedTermsEnum) TermState() (TermState, error) {
	e.current()
	return &OrdTermState{Ord: e.ord}, nil
}
