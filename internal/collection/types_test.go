package collection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var typedEvents = []Collection{
	{Date: date(2025, time.January, 8), Type: "Grey"},
	{Date: date(2025, time.January, 2), Type: "Brown"},
	{Date: date(2024, time.December, 25), Type: "Grey"},
	{Date: date(2025, time.January, 15), Type: "Purple"},
}

func TestTypes(t *testing.T) {
	require.Equal(t, []string{"Grey", "Brown", "Purple"}, Types(typedEvents))
	require.Equal(t, []string{}, Types(nil))
}

func TestResolveType(t *testing.T) {
	cases := []struct {
		query    string
		expected string
		ok       bool
	}{
		{query: "Grey", expected: "Grey", ok: true},
		{query: "grey", expected: "Grey", ok: true},
		{query: " PURPLE ", expected: "Purple", ok: true},
		{query: "Gray", expected: "Grey", ok: true},
		{query: "brwn", expected: "Brown", ok: true},
		{query: "Blue", ok: false},
		{query: "", ok: false},
	}

	for _, test := range cases {
		resolved, ok := ResolveType(typedEvents, test.query)
		require.Equal(t, test.ok, ok, test.query)
		require.Equal(t, test.expected, resolved, test.query)
	}

	_, ok := ResolveType(nil, "Grey")
	require.False(t, ok)
}

func TestOfType(t *testing.T) {
	require.Equal(t, []Collection{
		{Date: date(2025, time.January, 8), Type: "Grey"},
		{Date: date(2024, time.December, 25), Type: "Grey"},
	}, OfType(typedEvents, "Grey"))
	require.Equal(t, []Collection{}, OfType(typedEvents, "Blue"))
}
