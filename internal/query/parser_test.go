package query

import (
	"slices"
	"testing"

	"github.com/indigo-web/lazysock/kv"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("single pair", func(t *testing.T) {
		result := kv.NewExact()
		Parse("hello=world", result)
		require.True(t, result.Has("hello"))
		require.Equal(t, "world", result.Value("hello"))
	})

	t.Run("two pairs", func(t *testing.T) {
		result := kv.NewExact()
		Parse("hello=world&lorem=ipsum", result)
		require.Equal(t, "world", result.Value("hello"))
		require.Equal(t, "ipsum", result.Value("lorem"))
	})

	t.Run("empty value before ampersand", func(t *testing.T) {
		result := kv.NewExact()
		Parse("hello=&another=pair", result)
		require.True(t, result.Has("hello"))
		require.Empty(t, result.Value("hello"))
		require.Equal(t, "pair", result.Value("another"))
	})

	t.Run("empty key", func(t *testing.T) {
		result := kv.NewExact()
		Parse("=world&a=b", result)
		require.Equal(t, []kv.Pair{{Key: "", Value: "world"}, {Key: "a", Value: "b"}}, result.Expose())
	})

	t.Run("trailing and repeated ampersands", func(t *testing.T) {
		result := kv.NewExact()
		Parse("hello=world&&foo=bar&", result)
		require.Equal(t, 2, result.Len())
	})

	t.Run("flag", func(t *testing.T) {
		for _, raw := range []string{
			"lorem&hello=world&foo=bar",
			"hello=world&lorem&foo=bar",
			"hello=world&foo=bar&lorem",
		} {
			result := kv.NewExact()
			Parse(raw, result)
			require.Equal(t, "world", result.Value("hello"), raw)
			require.Equal(t, "bar", result.Value("foo"), raw)
			value, found := result.Get("lorem")
			require.True(t, found, raw)
			require.Empty(t, value, raw)
		}
	})

	t.Run("decoding", func(t *testing.T) {
		result := kv.NewExact()
		Parse("q=hello+world&sym=%26%3D&na%6De=x", result)
		require.Equal(t, "hello world", result.Value("q"))
		require.Equal(t, "&=", result.Value("sym"))
		require.Equal(t, "x", result.Value("name"))
	})

	t.Run("bad escape is kept literally", func(t *testing.T) {
		result := kv.NewExact()
		Parse("a=%zz&q=100%&b%2=c", result)
		require.Equal(t, "%zz", result.Value("a"))
		require.Equal(t, "100%", result.Value("q"))
		require.Equal(t, "c", result.Value("b%2"))
	})

	t.Run("arrival order", func(t *testing.T) {
		result := kv.NewExact()
		Parse("b=1&a=2&b=3", result)
		require.Equal(t, []string{"1", "3"}, slices.Collect(result.Values("b")))
		require.Equal(t, []string{"b", "a"}, slices.Collect(result.Keys()))
	})
}
