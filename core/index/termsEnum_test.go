package index

import (
	"testing"

	tassert "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsweet/gosegment/core/util"
)

func newTestEnum() *SortedTermsEnum {
	return NewSortedTermsEnum([]*TermData{
		{Term: []byte("apple"), DocFreq: 2, TotalTermFreq: 3, Docs: []int{1, 4}, Freqs: []int{1, 2}},
		{Term: []byte("banana"), DocFreq: 1, TotalTermFreq: 1, Docs: []int{2}, Freqs: []int{1}},
		{Term: []byte("cherry"), DocFreq: 3, TotalTermFreq: -1, Docs: []int{0, 3, 5}, Freqs: nil},
	})
}

func TestTermsEnumAccessorsPanicWhileUnpositioned(t *testing.T) {
	e := newTestEnum()
	tassert.Panics(t, func() { e.Term() })
	tassert.Panics(t, func() { e.Ord() })
	tassert.Panics(t, func() { e.DocFreq() })
	tassert.Panics(t, func() { e.TotalTermFreq() })
	tassert.Panics(t, func() { e.Docs(nil, nil) })
}

func TestTermsEnumNextIteratesInOrder(t *testing.T) {
	e := newTestEnum()
	var terms []string
	for {
		term, err := e.Next()
		require.NoError(t, err)
		if term == nil {
			break
		}
		terms = append(terms, string(term))
	}
	tassert.Equal(t, []string{"apple", "banana", "cherry"}, terms)

	// exhausted: accessors are invalid until repositioned
	tassert.Panics(t, func() { e.Term() })
	term, err := e.Next()
	require.NoError(t, err)
	tassert.Nil(t, term)
}

func TestTermsEnumSeekCeil(t *testing.T) {
	e := newTestEnum()

	tassert.Equal(t, SEEK_STATUS_FOUND, e.SeekCeil([]byte("banana")))
	tassert.Equal(t, []byte("banana"), e.Term())
	tassert.EqualValues(t, 1, e.Ord())

	// landing on the next greater term
	tassert.Equal(t, SEEK_STATUS_NOT_FOUND, e.SeekCeil([]byte("bz")))
	tassert.Equal(t, []byte("cherry"), e.Term())

	// past the end
	tassert.Equal(t, SEEK_STATUS_END, e.SeekCeil([]byte("plum")))
	tassert.Panics(t, func() { e.Term() })

	// END is not terminal across calls: a later seek repositions,
	// backwards from where the cursor last was
	tassert.Equal(t, SEEK_STATUS_FOUND, e.SeekCeil([]byte("apple")))
	tassert.Equal(t, []byte("apple"), e.Term())
	tassert.EqualValues(t, 0, e.Ord())
}

func TestTermsEnumSeekExact(t *testing.T) {
	e := newTestEnum()

	ok, err := e.SeekExact([]byte("cherry"))
	require.NoError(t, err)
	tassert.True(t, ok)
	df, err := e.DocFreq()
	require.NoError(t, err)
	tassert.Equal(t, 3, df)
	tf, err := e.TotalTermFreq()
	require.NoError(t, err)
	tassert.EqualValues(t, -1, tf) // codec cannot compute it

	// a miss leaves no stale position behind
	ok, err = e.SeekExact([]byte("blueberry"))
	require.NoError(t, err)
	tassert.False(t, ok)
	tassert.Panics(t, func() { e.Term() })
}

func TestTermsEnumSeekExactByOrd(t *testing.T) {
	e := newTestEnum()
	require.NoError(t, e.SeekExactByOrd(2))
	tassert.Equal(t, []byte("cherry"), e.Term())
	require.NoError(t, e.SeekExactByOrd(0))
	tassert.Equal(t, []byte("apple"), e.Term())
	tassert.Panics(t, func() { e.SeekExactByOrd(3) })
}

func TestTermsEnumTermStateRoundTrip(t *testing.T) {
	e := newTestEnum()
	_, err := e.SeekExact([]byte("banana"))
	require.NoError(t, err)
	state, err := e.TermState()
	require.NoError(t, err)

	// move away, then restore
	tassert.Equal(t, SEEK_STATUS_END, e.SeekCeil([]byte("zzz")))
	require.NoError(t, e.SeekExactWithState([]byte("banana"), state))
	tassert.Equal(t, []byte("banana"), e.Term())
	tassert.EqualValues(t, 1, e.Ord())

	// a state belonging to a different term is rejected
	tassert.Panics(t, func() { e.SeekExactWithState([]byte("apple"), state) })
}

func TestTermsEnumDocsHonorsLiveDocs(t *testing.T) {
	e := newTestEnum()
	_, err := e.SeekExact([]byte("cherry"))
	require.NoError(t, err)

	docs, err := e.Docs(nil, nil)
	require.NoError(t, err)
	tassert.Equal(t, -1, docs.DocID())
	collected := collectDocs(t, docs)
	tassert.Equal(t, []int{0, 3, 5}, collected)

	liveDocs := util.NewMatchNoBits(6) // everything deleted
	docs, err = e.Docs(liveDocs, docs)
	require.NoError(t, err)
	doc, err := docs.NextDoc()
	require.NoError(t, err)
	tassert.Equal(t, NO_MORE_DOCS, doc)

	// freq defaults to 1 when the field carries no frequencies
	docs, err = e.Docs(nil, docs)
	require.NoError(t, err)
	_, err = docs.NextDoc()
	require.NoError(t, err)
	freq, err := docs.Freq()
	require.NoError(t, err)
	tassert.Equal(t, 1, freq)
}

func collectDocs(t *testing.T, de DocsEnum) []int {
	var collected []int
	for {
		doc, err := de.NextDoc()
		require.NoError(t, err)
		if doc == NO_MORE_DOCS {
			return collected
		}
		collected = append(collected, doc)
	}
}

func TestEmptyTermsEnum(t *testing.T) {
	e := EMPTY_TERMS_ENUM
	tassert.Equal(t, SEEK_STATUS_END, e.SeekCeil([]byte("anything")))
	tassert.NoError(t, e.SeekExactByOrd(42)) // no-op
	term, err := e.Next()
	require.NoError(t, err)
	tassert.Nil(t, term)
	tassert.Panics(t, func() { e.Term() })
	tassert.Panics(t, func() { e.DocFreq() })
}

func TestSortedTermsEnumRejectsUnsortedInput(t *testing.T) {
	tassert.Panics(t, func() {
		NewSortedTermsEnum([]*TermData{
			{Term: []byte("b")},
			{Term: []byte("a")},
		})
	})
}
