package symbolgraph

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildLargeGraph synthesizes a graph document with n distinct symbols plus a
// handful of duplicate precise identifiers, so partitioned workers must agree
// with the serial decoder on duplicate resolution too.
func buildLargeGraph(n int) []byte {
	var symbols []string
	for i := 0; i < n; i++ {
		symbols = append(symbols, fmt.Sprintf(`{
			"identifier": {"precise": "s:sym%d", "interfaceLanguage": "swift"},
			"kind": {"identifier": "swift.func", "displayName": "Function"},
			"pathComponents": ["fn%d()"],
			"names": {"title": "fn%d()"},
			"accessLevel": "public"
		}`, i, i, i))
	}
	// Duplicates land in different stride partitions: an undocumented copy
	// early, a documented one late.
	symbols = append(symbols, `{
		"identifier": {"precise": "s:sym1", "interfaceLanguage": "swift"},
		"names": {"title": "fn1 documented"},
		"docComment": {"lines": [{"text": "the real one"}]}
	}`)

	doc := fmt.Sprintf(`{
		"metadata": {"formatVersion": {"major": 0, "minor": 6}, "generator": "test"},
		"module": {"name": "Big"},
		"symbols": [%s],
		"relationships": [
			{"kind": "memberOf", "source": "s:sym1", "target": "s:sym0"}
		]
	}`, strings.Join(symbols, ","))
	return []byte(doc)
}

func TestDecodeConcurrently_MatchesSerial(t *testing.T) {
	t.Parallel()

	data := buildLargeGraph(40)
	want, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, want.Symbols, 40)
	assert.Equal(t, "fn1 documented", want.Symbols["s:sym1"].Names.Title)

	for _, workers := range []int{1, 2, 4, 8} {
		got, err := DecodeConcurrently(data, workers)
		require.NoError(t, err, "workers=%d", workers)

		assert.Equal(t, want.Metadata, got.Metadata, "workers=%d", workers)
		assert.Equal(t, want.Module, got.Module, "workers=%d", workers)
		assert.Equal(t, want.Relationships, got.Relationships, "workers=%d", workers)
		assert.Equal(t, want.Symbols, got.Symbols, "workers=%d", workers)
	}
}

func TestDecodeConcurrently_MoreWorkersThanSymbols(t *testing.T) {
	t.Parallel()

	data := buildLargeGraph(3)
	got, err := DecodeConcurrently(data, 16)
	require.NoError(t, err)
	assert.Len(t, got.Symbols, 3)
}

func TestDecodeConcurrently_PropagatesError(t *testing.T) {
	t.Parallel()

	// One symbol in the array is missing its precise identifier; every worker
	// must drain and the first error surfaces.
	doc := `{"symbols": [
		{"identifier": {"precise": "s:ok", "interfaceLanguage": "swift"}},
		{"kind": {"identifier": "swift.class"}}
	]}`

	_, err := DecodeConcurrently([]byte(doc), 4)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "precise identifier")
}
