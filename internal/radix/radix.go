// Package radix implements a stable least-significant-digit radix sort over
// unsigned integer keys.
package radix

import (
	"cmp"
	"slices"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Threshold is the input size below which Sort falls back to a comparison sort.
const Threshold = 128

const (
	digitBits = 8
	buckets   = 1 << digitBits
	digitMask = buckets - 1
)

// Sort orders items by key, preserving the relative order of equal keys. The
// sorted data is returned; it may live in items or in a scratch buffer of the
// same length, so callers must use the returned slice.
func Sort[T any, K constraints.Unsigned](items []T, key func(T) K) []T {
	if len(items) < 2 {
		return items
	}
	if len(items) < Threshold {
		slices.SortStableFunc(items, func(a, b T) int {
			return cmp.Compare(key(a), key(b))
		})
		return items
	}

	keys := make([]K, len(items))
	var or, and K
	and = ^K(0)
	for i, it := range items {
		k := key(it)
		keys[i] = k
		or |= k
		and &= k
	}
	// Bits that differ somewhere across the keys.
	varying := or ^ and

	src, dst := items, make([]T, len(items))
	srcKeys, dstKeys := keys, make([]K, len(items))
	var counts [buckets]int

	width := int(unsafe.Sizeof(K(0))) * 8
	for shift := 0; shift < width; shift += digitBits {
		if (varying>>shift)&digitMask == 0 {
			continue
		}
		counts = [buckets]int{}
		for _, k := range srcKeys {
			counts[(k>>shift)&digitMask]++
		}
		sum := 0
		for i, c := range counts {
			counts[i] = sum
			sum += c
		}
		for i, k := range srcKeys {
			d := (k >> shift) & digitMask
			pos := counts[d]
			counts[d]++
			dst[pos] = src[i]
			dstKeys[pos] = k
		}
		src, dst = dst, src
		srcKeys, dstKeys = dstKeys, srcKeys
	}
	return src
}

// Uints sorts a slice of unsigned keys.
func Uints[K constraints.Unsigned](keys []K) []K {
	return Sort(keys, func(k K) K { return k })
}
