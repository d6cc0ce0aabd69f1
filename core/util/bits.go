package util

// util/Bits.java

/* Interface for Bitset-like structures. */
type Bits interface {
	// Returns the value of the bit with the specified index. The
	// index should be non-negative and < Length(). The result of
	// passing negative or out of bounds values is undefined by this
	// interface, just don't do it!
	At(index int) bool
	// Returns the number of bits in the set
	Length() int
}

/* Bits impl of the specified length with all bits set. */
type MatchAllBits struct {
	length int
}

func NewMatchAllBits(length int) *MatchAllBits {
	return &MatchAllBits{length}
}

func (b *MatchAllBits) At(index int) bool {
	return true
}

func (b *MatchAllBits) Length() int {
	return b.length
}

/* Bits impl of the specified length with no bits set. */
type MatchNoBits struct {
	length int
}

func NewMatchNoBits(length int) *MatchNoBits {
	return &MatchNoBits{length}
}

func (b *MatchNoBits) At(index int) bool {
	return false
}

func (b *MatchNoBits) Length() int {
	return b.length
}
