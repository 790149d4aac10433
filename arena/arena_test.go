package arena_test

import (
	"bytes"
	"sync/atomic"
	"testing"

	concpool "github.com/sourcegraph/conc/pool"
	"github.com/stretchr/testify/require"

	"github.com/coachpo/arena/arena"
	"github.com/coachpo/arena/sanitize"
)

func mustNotInit[T any](t *testing.T) func() T {
	t.Helper()
	return func() T {
		t.Fatal("initializer must not be invoked")
		var zero T
		return zero
	}
}

func TestGetReusesReleasedValueWithMutation(t *testing.T) {
	buffers := arena.New[*bytes.Buffer]()

	lease := buffers.Get(func() *bytes.Buffer { return bytes.NewBufferString("Foo") })
	require.Equal(t, "Foo", (*lease.Value()).String())
	lease.Release()

	reused := buffers.Get(mustNotInit[*bytes.Buffer](t))
	require.Equal(t, "Foo", (*reused.Value()).String())
	reused.Release()
}

func TestGetRunsInitWhenEmpty(t *testing.T) {
	ints := arena.New[int]()

	lease := ints.Get(func() int { return 42 })
	require.Equal(t, 42, *lease.Value())
	require.Equal(t, int64(1), ints.Stats().Created)
	lease.Release()
}

func TestGetZeroDefaultsToZeroValue(t *testing.T) {
	ints := arena.New[int]()

	lease := ints.GetZero()
	require.Equal(t, 0, *lease.Value())
	lease.Release()
}

func TestSanitizerClearsSliceBeforeReuse(t *testing.T) {
	slices := arena.New(arena.Sanitizer(sanitize.Slice[[]int]))

	lease := slices.Get(func() []int { return make([]int, 0, 4) })
	*lease.Value() = append(*lease.Value(), 10)
	lease.Release()
	require.Equal(t, 1, slices.Len())

	reused := slices.Get(mustNotInit[[]int](t))
	require.Empty(t, *reused.Value())
	require.GreaterOrEqual(t, cap(*reused.Value()), 1)
	reused.Release()
}

func TestSanitizerDiscardSkipsStorage(t *testing.T) {
	discardNegative := func(v int) (int, bool) {
		return v, v >= 0
	}
	ints := arena.New(arena.Sanitizer(discardNegative))

	lease := ints.Get(func() int { return -1 })
	lease.Release()
	require.Equal(t, 0, ints.Len())
	require.Equal(t, int64(1), ints.Stats().Discarded)

	var initCalls int
	next := ints.Get(func() int { initCalls++; return 7 })
	require.Equal(t, 1, initCalls)
	next.Release()
}

func TestLIFOReuseOrder(t *testing.T) {
	ints := arena.New[int]()

	a := ints.Get(func() int { return 1 })
	b := ints.Get(func() int { return 2 })
	c := ints.Get(func() int { return 3 })

	a.Release()
	b.Release()
	c.Release()
	require.Equal(t, 3, ints.Len())

	for _, want := range []int{3, 2, 1} {
		lease := ints.Get(mustNotInit[int](t))
		require.Equal(t, want, *lease.Value())
		lease.Take()
	}
	require.Equal(t, 0, ints.Len())
}

func TestReduceToDropsNewestReleases(t *testing.T) {
	ints := arena.New[int]()
	for v := 1; v <= 5; v++ {
		ints.Wrap(v).Release()
	}
	require.Equal(t, 5, ints.Len())

	ints.ReduceTo(2)
	require.Equal(t, 2, ints.Len())

	// The retained prefix holds the two earliest releases; the dropped
	// values never reappear.
	first := ints.Get(mustNotInit[int](t))
	require.Equal(t, 2, *first.Value())
	second := ints.Get(mustNotInit[int](t))
	require.Equal(t, 1, *second.Value())
	first.Take()
	second.Take()

	var initCalls int
	extra := ints.Get(func() int { initCalls++; return 0 })
	require.Equal(t, 1, initCalls)
	extra.Release()
}

func TestReduceToZeroEmptiesArena(t *testing.T) {
	ints := arena.New(arena.Capacity[int](8))
	for v := 0; v < 3; v++ {
		ints.Wrap(v).Release()
	}

	ints.ReduceTo(0)
	require.Equal(t, 0, ints.Len())

	ints.ReduceTo(-1)
	require.Equal(t, 0, ints.Len())
}

func TestWrapBypassesStorageUntilRelease(t *testing.T) {
	buffers := arena.New[*bytes.Buffer]()

	lease := buffers.Wrap(bytes.NewBufferString("external"))
	require.Equal(t, 0, buffers.Len())

	lease.Release()
	require.Equal(t, 1, buffers.Len())
}

func TestNamedArena(t *testing.T) {
	ints := arena.New(arena.Named[int]("scratch"))
	require.Equal(t, "scratch", ints.Name())
	require.Equal(t, "arena", arena.New[int]().Name())
}

func TestGetNilInitPanics(t *testing.T) {
	ints := arena.New[int]()
	require.Panics(t, func() { ints.Get(nil) })
}

func TestConcurrentConservation(t *testing.T) {
	const (
		workers    = 8
		iterations = 500
	)
	counters := arena.New(arena.Capacity[int64](workers))

	var next atomic.Int64
	runners := concpool.New().WithMaxGoroutines(workers)
	for w := 0; w < workers; w++ {
		runners.Go(func() {
			for i := 0; i < iterations; i++ {
				lease := counters.Get(func() int64 { return next.Add(1) })
				*lease.Value()++
				if i%7 == 0 {
					lease.Take()
				} else {
					lease.Release()
				}
			}
		})
	}
	runners.Wait()

	stats := counters.Stats()
	require.Equal(t, int64(0), stats.Live)
	require.Equal(t, stats.Created-stats.Discarded-stats.Taken, stats.Idle)
	require.Equal(t, int64(workers*iterations), stats.Reused+stats.Created)
}
