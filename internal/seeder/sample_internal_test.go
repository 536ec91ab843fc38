package seeder

import (
	"math"
	"slices"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestSampleUniqueReachesTarget(t *testing.T) {
	c := qt.New(t)

	g := NewDataGenerator(7)
	values, err := sampleUnique(40, 50, attemptBudget(40, 50), func() int {
		return g.ForeignKey(50)
	})
	c.Assert(err, qt.IsNil)
	c.Assert(values, qt.HasLen, 40)

	seen := make(map[int]bool)
	for _, v := range values {
		c.Assert(seen[v], qt.IsFalse, qt.Commentf("value %d repeated", v))
		c.Assert(v >= 1 && v <= 50, qt.IsTrue)
		seen[v] = true
	}
}

func TestSampleUniqueFullSpace(t *testing.T) {
	c := qt.New(t)

	g := NewDataGenerator(11)
	values, err := sampleUnique(12, 12, attemptBudget(12, 50), func() accessKey {
		return accessKey{user: g.ForeignKey(3), service: g.ForeignKey(4)}
	})
	c.Assert(err, qt.IsNil)
	c.Assert(values, qt.HasLen, 12)
}

func TestSampleUniqueKeepsFirstDrawOrder(t *testing.T) {
	c := qt.New(t)

	draws := []int{3, 1, 3, 2, 1, 4}
	i := 0
	values, err := sampleUnique(4, unbounded, 100, func() int {
		v := draws[i]
		i++
		return v
	})
	c.Assert(err, qt.IsNil)
	c.Assert(values, qt.DeepEquals, []int{3, 1, 2, 4})
}

func TestSampleUniqueSpaceTooSmall(t *testing.T) {
	c := qt.New(t)

	calls := 0
	_, err := sampleUnique(7, 6, 1000, func() int {
		calls++
		return calls
	})
	c.Assert(err, qt.ErrorIs, ErrSampleSpace)
	c.Assert(calls, qt.Equals, 0)
}

func TestSampleUniqueGivesUp(t *testing.T) {
	c := qt.New(t)

	values, err := sampleUnique(2, unbounded, 25, func() string { return "same" })
	c.Assert(err, qt.ErrorIs, ErrSampleExhausted)
	c.Assert(err, qt.ErrorMatches, `gave up drawing unique values: 1 of 2 after 25 draws`)
	c.Assert(values, qt.DeepEquals, []string{"same"})
}

func TestSampleUniqueZeroTarget(t *testing.T) {
	c := qt.New(t)

	values, err := sampleUnique(0, 0, 10, func() int { return 1 })
	c.Assert(err, qt.IsNil)
	c.Assert(values, qt.HasLen, 0)
}

func TestAttemptBudget(t *testing.T) {
	c := qt.New(t)

	c.Assert(attemptBudget(1, 50), qt.Equals, minAttempts)
	c.Assert(attemptBudget(1000, 50), qt.Equals, 50000)
}

func TestSpaceSizeSaturates(t *testing.T) {
	c := qt.New(t)

	c.Assert(spaceSize(3, 4, 2), qt.Equals, 24)
	c.Assert(spaceSize(3, 0, 2), qt.Equals, 0)
	c.Assert(spaceSize(), qt.Equals, 1)
	c.Assert(spaceSize(math.MaxInt/2, 4), qt.Equals, math.MaxInt)
	c.Assert(spaceSize(math.MaxInt/3, math.MaxInt/3, 2), qt.Equals, math.MaxInt)
	c.Assert(attemptBudget(math.MaxInt/2, 50), qt.Equals, math.MaxInt)
}

func TestCheckOrderMatchesDependencySort(t *testing.T) {
	c := qt.New(t)

	c.Assert(CatalogGraph().checkOrder(DeclaredOrder), qt.IsNil)

	// still a valid order, but not the one the graph sorts into
	swapped := slices.Clone(DeclaredOrder)
	swapped[4], swapped[5] = swapped[5], swapped[4]
	c.Assert(CatalogGraph().ValidateOrder(swapped), qt.IsNil)
	c.Assert(CatalogGraph().checkOrder(swapped), qt.ErrorIs, ErrInvalidOrder)
	c.Assert(CatalogGraph().checkOrder(swapped), qt.ErrorMatches, `invalid insertion order: declared .*, dependency sort gives .*`)
}
