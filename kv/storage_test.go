package kv

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStorage(t *testing.T) {
	getHeaders := func() *Storage {
		return New().
			Add("Foo", "bar").
			Add("Hello", "World").
			Add("Lorem", "ipsum").
			Add("hello", "Pavlo")
	}

	t.Run("case-insensitive lookup", func(t *testing.T) {
		kv := getHeaders()
		require.Equal(t, "World", kv.Value("HELLO"))
		require.Equal(t, []string{"World", "Pavlo"}, slices.Collect(kv.Values("hello")))
		require.True(t, kv.Has("foo"))
		require.False(t, kv.Has("bar"))
		require.Equal(t, "default", kv.ValueOr("missing", "default"))
	})

	t.Run("keys are unique", func(t *testing.T) {
		require.Equal(t, []string{"Foo", "Hello", "Lorem"}, slices.Collect(getHeaders().Keys()))
	})

	t.Run("delete", func(t *testing.T) {
		kv := getHeaders().Delete("HELLO")

		require.Equal(t, []Pair{{"Foo", "bar"}, {"Lorem", "ipsum"}}, kv.Expose())
	})

	t.Run("set", func(t *testing.T) {
		kv := getHeaders().Set("HELLO", "no more Pavlo")

		want := []Pair{
			{"Foo", "bar"},
			{"HELLO", "no more Pavlo"},
			{"Lorem", "ipsum"},
		}
		require.Equal(t, want, kv.Expose())
	})

	t.Run("set new key", func(t *testing.T) {
		kv := getHeaders().Set("Another", "one")
		require.Equal(t, 5, kv.Len())
		require.Equal(t, "one", kv.Value("another"))
	})

	t.Run("pairs preserve order", func(t *testing.T) {
		var keys []string
		for key := range getHeaders().Pairs() {
			keys = append(keys, key)
		}

		require.Equal(t, []string{"Foo", "Hello", "Lorem", "hello"}, keys)
	})

	t.Run("exact", func(t *testing.T) {
		kv := NewExact().Add("q", "1").Add("Q", "2").Add("q", "3")
		require.Equal(t, []string{"1", "3"}, slices.Collect(kv.Values("q")))
		require.Equal(t, "2", kv.Value("Q"))
		require.True(t, kv.Clone().exact)
	})

	t.Run("clone is independent", func(t *testing.T) {
		original := getHeaders()
		cloned := original.Clone()
		cloned.Set("Foo", "baz")
		require.Equal(t, "bar", original.Value("Foo"))
		require.Equal(t, "baz", cloned.Value("Foo"))
	})

	t.Run("from map", func(t *testing.T) {
		kv := NewFromMap(map[string][]string{"Accept": {"a", "b"}})
		require.Equal(t, []string{"a", "b"}, slices.Collect(kv.Values("accept")))
	})
}
