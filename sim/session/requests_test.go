package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memsim/sim/alloc"
)

func TestParseRequest(t *testing.T) {
	tests := []struct {
		in   string
		want Request
	}{
		{"editor:25", Request{Name: "editor", Size: 25}},
		{"25", Request{Size: 25}},
		{"host:port:10", Request{Name: "host:port", Size: 10}},
		{"a: 7 ", Request{Name: "a", Size: 7}},
		{"neg:-5", Request{Name: "neg", Size: -5}},
	}
	for _, tt := range tests {
		got, err := ParseRequest(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseRequest("editor:big")
	require.ErrorIs(t, err, alloc.ErrInvalidSize)
	_, err = ParseRequest("")
	require.ErrorIs(t, err, alloc.ErrInvalidSize)
}

func TestParseRequests(t *testing.T) {
	reqs, err := ParseRequests("editor:25, 15; shell:5,,")
	require.NoError(t, err)
	assert.Equal(t, []Request{
		{Name: "editor", Size: 25},
		{Size: 15},
		{Name: "shell", Size: 5},
	}, reqs)

	reqs, err = ParseRequests("  ")
	require.NoError(t, err)
	assert.Empty(t, reqs)

	_, err = ParseRequests("a:1, b:x")
	require.ErrorIs(t, err, alloc.ErrInvalidSize)
}
