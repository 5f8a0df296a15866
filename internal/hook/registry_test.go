package hook

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApply_NoFilters(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, "markup", Apply(r, "missing", "markup"))
	assert.False(t, r.Has("missing"))
}

func TestApply_NilRegistry(t *testing.T) {
	var r *Registry
	assert.Equal(t, 42, Apply(r, "anything", 42))
}

func TestApply_OrderByPriorityThenInsertion(t *testing.T) {
	r := NewRegistry()
	AddFilter(r, "h", 20, func(v string, _ ...any) string { return v + "c" })
	AddFilter(r, "h", DefaultPriority, func(v string, _ ...any) string { return v + "a" })
	AddFilter(r, "h", DefaultPriority, func(v string, _ ...any) string { return v + "b" })
	AddFilter(r, "h", 5, func(v string, _ ...any) string { return v + "0" })

	assert.Equal(t, "0abc", Apply(r, "h", ""))
}

func TestApply_PassesArgs(t *testing.T) {
	r := NewRegistry()
	var seen []any
	AddFilter(r, "h", DefaultPriority, func(v string, args ...any) string {
		seen = args
		return strings.ToUpper(v)
	})

	out := Apply(r, "h", "x", "post-1", 7)
	assert.Equal(t, "X", out)
	assert.Equal(t, []any{"post-1", 7}, seen)
}

func TestApply_SkipsMismatchedTypes(t *testing.T) {
	r := NewRegistry()
	AddFilter(r, "h", DefaultPriority, func(v int, _ ...any) int { return v + 1 })
	AddFilter(r, "h", DefaultPriority, func(v string, _ ...any) string { return v + "!" })

	assert.Equal(t, "hi!", Apply(r, "h", "hi"))
	assert.Equal(t, 2, Apply(r, "h", 1))
}

func TestApply_WrongResultTypeFallsBack(t *testing.T) {
	r := NewRegistry()
	r.Add("h", DefaultPriority, func(any, ...any) any { return 3 })

	assert.Equal(t, "kept", Apply(r, "h", "kept"))
}

func TestRemove(t *testing.T) {
	r := NewRegistry()
	AddFilter(r, "h", DefaultPriority, func(v string, _ ...any) string { return "changed" })
	r.Remove("h")

	assert.Equal(t, "orig", Apply(r, "h", "orig"))
}

func TestApply_Concurrent(t *testing.T) {
	r := NewRegistry()
	AddFilter(r, "h", DefaultPriority, func(v int, _ ...any) int { return v * 2 })

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%5 == 0 {
				AddFilter(r, "other", DefaultPriority, func(v int, _ ...any) int { return v })
			}
			assert.Equal(t, i*2, Apply(r, "h", i))
		}(i)
	}
	wg.Wait()
}
