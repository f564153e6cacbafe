package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDecodeArgs_Valid tests decoding well-formed arguments.
func TestDecodeArgs_Valid(t *testing.T) {
	var args struct {
		Query string `json:"query"`
	}
	err := DecodeArgs(json.RawMessage(`{"query":"weather in sf"}`), &args)
	require.NoError(t, err)
	assert.Equal(t, "weather in sf", args.Query)
}

// TestDecodeArgs_RepairsAlmostJSON tests that model-typical malformed
// payloads are repaired before decoding.
func TestDecodeArgs_RepairsAlmostJSON(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
	}{
		{"single quotes", `{'query': 'weather'}`},
		{"trailing comma", `{"query": "weather",}`},
		{"unquoted key", `{query: "weather"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var args struct {
				Query string `json:"query"`
			}
			err := DecodeArgs(json.RawMessage(tc.raw), &args)
			require.NoError(t, err)
			assert.Equal(t, "weather", args.Query)
		})
	}
}

// TestDecodeArgs_Empty tests that an empty payload is an error.
func TestDecodeArgs_Empty(t *testing.T) {
	var args map[string]any
	err := DecodeArgs(nil, &args)
	assert.Error(t, err)
}

// TestDecodeArgs_Unrepairable tests payloads beyond repair.
func TestDecodeArgs_Unrepairable(t *testing.T) {
	var args struct {
		Query string `json:"query"`
	}
	err := DecodeArgs(json.RawMessage(`]]][[`), &args)
	assert.Error(t, err)
}
