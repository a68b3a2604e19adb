package percolation

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// DefaultFilterBits is the bit-array size used when no override is
// given. At this size the filter occupies roughly 1.25GB; callers with
// smaller clique sets should size it down via NewBloomFilter directly.
const DefaultFilterBits = 10_000_000_000

// BloomFilter is a fixed-size bit array addressed by a keyed hash of a
// 64-bit value. It never removes bits, so false positives accumulate
// as more keys are set; callers treat a positive test as "maybe
// present" and confirm with an exact check downstream.
type BloomFilter struct {
	bits       []uint64
	l          int64
	seed       []byte
	occupied   int64
	callsToSet int64
}

// NewBloomFilter allocates a filter of l bits, seeded with key so runs
// of the tool are reproducible given the same --hash-seed.
func NewBloomFilter(l int64, key []byte) *BloomFilter {
	if l <= 0 {
		l = DefaultFilterBits
	}
	return &BloomFilter{
		bits: make([]uint64, (l+63)/64),
		l:    l,
		seed: key,
	}
}

func (b *BloomFilter) hash(a int64) int64 {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(a))
	h, err := blake2b.New(8, b.seed)
	if err != nil {
		panic(err) // only fails for out-of-range size/key, both fixed here
	}
	h.Write(buf[:])
	sum := h.Sum(nil)
	v := int64(binary.BigEndian.Uint64(sum))
	if v < 0 {
		v = -v
	}
	return v % b.l
}

// Test reports whether a's bit might be set.
func (b *BloomFilter) Test(a int64) bool {
	bit := b.hash(a)
	return b.bits[bit/64]&(1<<uint(bit%64)) != 0
}

// Set marks a's bit as present.
func (b *BloomFilter) Set(a int64) {
	b.callsToSet++
	bit := b.hash(a)
	word, mask := bit/64, uint64(1)<<uint(bit%64)
	if b.bits[word]&mask == 0 {
		b.bits[word] |= mask
		b.occupied++
	}
}

// Occupied returns how many distinct bits have been set so far.
func (b *BloomFilter) Occupied() int64 { return b.occupied }

// CallsToSet returns how many Set calls have been made, including
// calls that found the bit already set.
func (b *BloomFilter) CallsToSet() int64 { return b.callsToSet }

// Bits returns the filter's total bit-array length.
func (b *BloomFilter) Bits() int64 { return b.l }

// OccupancyRatio returns the fraction of bits that have been set.
func (b *BloomFilter) OccupancyRatio() float64 {
	if b.l == 0 {
		return 0
	}
	return float64(b.occupied) / float64(b.l)
}

// CliqueBloomIndex indexes a fixed set of cliques into a binary tree
// over leaves [powerUp, powerUp+numCliques), so a search can estimate
// the maximum possible vertex overlap between a clique and every
// clique under a subtree without visiting each leaf individually.
type CliqueBloomIndex struct {
	filter  *BloomFilter
	PowerUp int32
}

// NewCliqueBloomIndex builds an index over powerUp leaves (the next
// power of two at or above the clique count).
func NewCliqueBloomIndex(powerUp int32, l int64, seed []byte) *CliqueBloomIndex {
	return &CliqueBloomIndex{filter: NewBloomFilter(l, seed), PowerUp: powerUp}
}

func branchKey(branch int32, vertex int32) int64 {
	return (int64(branch) << 32) + int64(vertex)
}

// AddClique records clique's vertices under branchID and every
// ancestor of branchID up to the root, so that later overlap
// estimates against any ancestor subtree count this clique too.
func (idx *CliqueBloomIndex) AddClique(clique []int32, branchID int32) {
	for branchID != 0 {
		for _, v := range clique {
			idx.filter.Set(branchKey(branchID, v))
		}
		branchID >>= 1
	}
}

// OverlapEstimate returns an upper bound on the number of vertices
// clique shares with any single clique indexed under branchID's
// subtree. It can over-count (multiple cliques under the subtree each
// contributing one hit) but never under-counts the true maximum, which
// is what makes it safe to prune a branch whose estimate is below the
// percolation threshold.
func (idx *CliqueBloomIndex) OverlapEstimate(clique []int32, branchID int32) int32 {
	var estimate int32
	for _, v := range clique {
		if idx.filter.Test(branchKey(branchID, v)) {
			estimate++
		}
	}
	return estimate
}

// Filter exposes the underlying bit array, mainly for metrics.
func (idx *CliqueBloomIndex) Filter() *BloomFilter { return idx.filter }
