package pairset

import (
	"testing"

	"go.viam.com/test"
)

func TestPairFlags(t *testing.T) {
	f := New(256, 256)
	test.That(t, f.Get(3, 200), test.ShouldBeFalse)

	f.SetOn(3, 200)
	test.That(t, f.Get(3, 200), test.ShouldBeTrue)
	test.That(t, f.Get(200, 3), test.ShouldBeFalse)

	f.SetOff(3, 200)
	test.That(t, f.Get(3, 200), test.ShouldBeFalse)

	test.That(t, f.GetSetOn(255, 255), test.ShouldBeFalse)
	test.That(t, f.GetSetOn(255, 255), test.ShouldBeTrue)
	test.That(t, f.Count(), test.ShouldEqual, 1)

	f.Clear()
	test.That(t, f.Get(255, 255), test.ShouldBeFalse)
	test.That(t, f.Count(), test.ShouldEqual, 0)
}

func TestPairFlagsEveryBit(t *testing.T) {
	f := New(256, 256)
	for r := uint(0); r < 256; r++ {
		for c := uint(0); c < 256; c++ {
			if (r+c)%3 == 0 {
				f.SetOn(r, c)
			}
		}
	}
	for r := uint(0); r < 256; r++ {
		for c := uint(0); c < 256; c++ {
			test.That(t, f.Get(r, c), test.ShouldEqual, (r+c)%3 == 0)
		}
	}
}

func TestPairFlagsResize(t *testing.T) {
	f := New(4, 4)
	f.SetOn(1, 1)
	f.Resize(10, 10)
	test.That(t, f.Rows(), test.ShouldEqual, 10)
	test.That(t, f.Get(1, 1), test.ShouldBeFalse)
	f.SetOn(9, 9)
	test.That(t, f.Get(9, 9), test.ShouldBeTrue)

	f.Resize(2, 2)
	test.That(t, f.Count(), test.ShouldEqual, 0)
}

func TestPairFlagsOutOfRange(t *testing.T) {
	f := New(2, 2)
	defer func() {
		test.That(t, recover(), test.ShouldNotBeNil)
	}()
	f.Get(2, 0)
}

func TestMakePair(t *testing.T) {
	test.That(t, MakePair(7, 2), test.ShouldResemble, Pair{A: 2, B: 7})
	test.That(t, MakePair(2, 7), test.ShouldResemble, Pair{A: 2, B: 7})
}

func TestPairFlagsIndependentBits(t *testing.T) {
	f := New(256, 256)
	test.That(t, f.Get(1, 2), test.ShouldBeFalse)

	f.SetOn(3, 4)
	f.SetOn(1, 2)
	test.That(t, f.Get(1, 2), test.ShouldBeTrue)
	test.That(t, f.Get(3, 4), test.ShouldBeTrue)

	f.SetOff(1, 2)
	test.That(t, f.Get(1, 2), test.ShouldBeFalse)
	test.That(t, f.Get(3, 4), test.ShouldBeTrue)
}
