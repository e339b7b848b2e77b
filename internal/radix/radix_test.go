package radix

import (
	"math/rand"
	"slices"
	"testing"

	"go.viam.com/test"
)

type record struct {
	key uint32
	seq int
}

func TestUintsFixture(t *testing.T) {
	values := []uint32{100000, 70000, 5000000, 3, 130000, 1, 100000000}
	want := []uint32{1, 3, 70000, 100000, 130000, 5000000, 100000000}

	t.Run("small", func(t *testing.T) {
		test.That(t, Uints(slices.Clone(values)), test.ShouldResemble, want)
	})

	t.Run("256 elements", func(t *testing.T) {
		// Repeating the values past Threshold sends them through the radix passes.
		in := make([]uint32, 256)
		counts := make(map[uint32]int)
		for i := range in {
			in[i] = values[(i*5)%len(values)]
			counts[in[i]]++
		}
		test.That(t, len(in), test.ShouldBeGreaterThan, Threshold)

		out := Uints(in)
		test.That(t, out, test.ShouldHaveLength, 256)
		test.That(t, slices.IsSorted(out), test.ShouldBeTrue)
		test.That(t, slices.Compact(slices.Clone(out)), test.ShouldResemble, want)
		for _, v := range out {
			counts[v]--
		}
		for _, v := range values {
			test.That(t, counts[v], test.ShouldEqual, 0)
		}
	})
}

func TestSortLarge(t *testing.T) {
	for _, n := range []int{Threshold - 1, Threshold, 256, 5000} {
		r := rand.New(rand.NewSource(int64(n)))
		in := make([]uint32, n)
		for i := range in {
			in[i] = r.Uint32()
		}
		want := slices.Clone(in)
		slices.Sort(want)
		test.That(t, Uints(in), test.ShouldResemble, want)
	}
}

func TestSortStable(t *testing.T) {
	// 256 records over 4 keys drives the radix path with heavy duplication.
	r := rand.New(rand.NewSource(42))
	items := make([]record, 256)
	for i := range items {
		items[i] = record{key: uint32(r.Intn(4)) << 20, seq: i}
	}
	out := Sort(items, func(rc record) uint32 { return rc.key })
	test.That(t, out, test.ShouldHaveLength, 256)
	for i := 1; i < len(out); i++ {
		test.That(t, out[i-1].key, test.ShouldBeLessThanOrEqualTo, out[i].key)
		if out[i-1].key == out[i].key {
			test.That(t, out[i-1].seq, test.ShouldBeLessThan, out[i].seq)
		}
	}
}

func TestSortKeyWidths(t *testing.T) {
	t.Run("uint8", func(t *testing.T) {
		in := make([]uint8, 300)
		for i := range in {
			in[i] = uint8(299 - i)
		}
		out := Uints(in)
		test.That(t, slices.IsSorted(out), test.ShouldBeTrue)
	})

	t.Run("uint64", func(t *testing.T) {
		r := rand.New(rand.NewSource(3))
		in := make([]uint64, 400)
		for i := range in {
			in[i] = r.Uint64()
		}
		out := Uints(in)
		test.That(t, slices.IsSorted(out), test.ShouldBeTrue)
	})

	t.Run("constant keys skip every pass", func(t *testing.T) {
		in := make([]uint16, 200)
		for i := range in {
			in[i] = 7
		}
		test.That(t, Uints(in), test.ShouldResemble, in)
	})
}

func TestSortSmall(t *testing.T) {
	test.That(t, Uints([]uint32{}), test.ShouldBeEmpty)
	test.That(t, Uints([]uint32{5}), test.ShouldResemble, []uint32{5})
}
