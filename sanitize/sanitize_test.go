package sanitize_test

import (
	"bytes"
	"container/list"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coachpo/arena/sanitize"
)

func TestIdentityPassesThrough(t *testing.T) {
	v, ok := sanitize.Identity("unchanged")
	require.True(t, ok)
	require.Equal(t, "unchanged", v)
}

func TestSliceClearsAndKeepsCapacity(t *testing.T) {
	s := make([]int, 0, 8)
	s = append(s, 10, 20)

	cleaned, ok := sanitize.Slice(s)
	require.True(t, ok)
	require.Len(t, cleaned, 0)
	require.Equal(t, 8, cap(cleaned))
}

func TestSliceReleasesElementReferences(t *testing.T) {
	s := []*bytes.Buffer{bytes.NewBufferString("a")}

	cleaned, ok := sanitize.Slice(s)
	require.True(t, ok)
	require.Nil(t, s[0])
	require.Len(t, cleaned, 0)
}

func TestMapClearsEntries(t *testing.T) {
	m := map[string]int{"a": 1, "b": 2}

	cleaned, ok := sanitize.Map(m)
	require.True(t, ok)
	require.Len(t, cleaned, 0)
}

func TestMapCoversSets(t *testing.T) {
	set := map[string]struct{}{"member": {}}

	cleaned, ok := sanitize.Map(set)
	require.True(t, ok)
	require.Len(t, cleaned, 0)
}

func TestBufferResets(t *testing.T) {
	b := bytes.NewBufferString("dirty")

	cleaned, ok := sanitize.Buffer(b)
	require.True(t, ok)
	require.Zero(t, cleaned.Len())
}

func TestBufferDiscardsNil(t *testing.T) {
	_, ok := sanitize.Buffer(nil)
	require.False(t, ok)
}

func TestBuilderResets(t *testing.T) {
	var b strings.Builder
	b.WriteString("dirty")

	cleaned, ok := sanitize.Builder(&b)
	require.True(t, ok)
	require.Zero(t, cleaned.Len())
}

func TestListReinitialises(t *testing.T) {
	l := list.New()
	l.PushBack(1)
	l.PushFront(2)

	cleaned, ok := sanitize.List(l)
	require.True(t, ok)
	require.Zero(t, cleaned.Len())
}

func TestPointerNilPassesThrough(t *testing.T) {
	rule := sanitize.Pointer(sanitize.Identity[int])

	cleaned, ok := rule(nil)
	require.True(t, ok)
	require.Nil(t, cleaned)
}

func TestPointerAppliesInnerRule(t *testing.T) {
	rule := sanitize.Pointer(sanitize.Slice[[]int])
	s := []int{1, 2, 3}

	cleaned, ok := rule(&s)
	require.True(t, ok)
	require.NotNil(t, cleaned)
	require.Len(t, *cleaned, 0)
}

func TestPointerPropagatesDiscard(t *testing.T) {
	discard := func(v int) (int, bool) { return v, false }
	rule := sanitize.Pointer(discard)
	v := 1

	cleaned, ok := rule(&v)
	require.False(t, ok)
	require.Nil(t, cleaned)
}

type selfCleaning struct {
	dirty  bool
	broken bool
}

func (s *selfCleaning) Sanitize() bool {
	if s.broken {
		return false
	}
	s.dirty = false
	return true
}

func TestMethodAdaptsRecyclable(t *testing.T) {
	v := &selfCleaning{dirty: true}
	cleaned, ok := sanitize.Method[*selfCleaning](v)
	require.True(t, ok)
	require.False(t, cleaned.dirty)

	_, ok = sanitize.Method[*selfCleaning](&selfCleaning{broken: true})
	require.False(t, ok)
}
