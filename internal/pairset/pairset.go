// Package pairset holds the collision pair type and the bit matrix used to
// report every pair at most once per broad-phase pass.
package pairset

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Index addresses an object in a broad-phase object table.
type Index = uint16

// MaxObjects is the largest object table an index can address.
const MaxObjects = 1<<16 - 1

// Pair is an unordered collision candidate stored with A < B.
type Pair struct {
	A, B Index
}

// MakePair orders the two indices.
func MakePair(a, b Index) Pair {
	if a > b {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

// PairFlags is a rows x cols bit matrix.
type PairFlags struct {
	rows, cols uint
	bits       *bitset.BitSet
}

func New(rows, cols uint) *PairFlags {
	return &PairFlags{rows: rows, cols: cols, bits: bitset.New(rows * cols)}
}

func (f *PairFlags) Rows() uint { return f.rows }
func (f *PairFlags) Cols() uint { return f.cols }

func (f *PairFlags) index(row, col uint) uint {
	if row >= f.rows || col >= f.cols {
		panic(fmt.Sprintf("pairset: index (%d, %d) out of range [%d, %d]", row, col, f.rows, f.cols))
	}
	return row*f.cols + col
}

func (f *PairFlags) Get(row, col uint) bool {
	return f.bits.Test(f.index(row, col))
}

func (f *PairFlags) SetOn(row, col uint) {
	f.bits.Set(f.index(row, col))
}

func (f *PairFlags) SetOff(row, col uint) {
	f.bits.Clear(f.index(row, col))
}

// GetSetOn sets the bit and reports whether it was already set.
func (f *PairFlags) GetSetOn(row, col uint) bool {
	i := f.index(row, col)
	if f.bits.Test(i) {
		return true
	}
	f.bits.Set(i)
	return false
}

// Clear turns every bit off.
func (f *PairFlags) Clear() {
	f.bits.ClearAll()
}

// Resize changes the dimensions and clears every bit. Storage is reused when
// it is large enough.
func (f *PairFlags) Resize(rows, cols uint) {
	f.rows, f.cols = rows, cols
	if need := rows * cols; need > f.bits.Len() {
		f.bits = bitset.New(need)
		return
	}
	f.bits.ClearAll()
}

// Count returns the number of set bits.
func (f *PairFlags) Count() uint {
	return f.bits.Count()
}
