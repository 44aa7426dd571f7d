package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	require.Equal(t, "grey", NormalizeName(" Grey\n"))
	require.Equal(t, "greybin", NormalizeName("Grey  Bin"))
	require.Equal(t, "", NormalizeName(" \t"))
}

func TestStripWhitespace(t *testing.T) {
	require.Equal(t, "e30=", StripWhitespace("e3\n0 =\t"))
}

func TestLeftPad(t *testing.T) {
	cases := []struct {
		text     string
		width    int
		expected string
	}{
		{text: "42", width: 12, expected: "000000000042"},
		{text: "", width: 3, expected: "000"},
		{text: "123456789012", width: 12, expected: "123456789012"},
		{text: "1234567890123", width: 12, expected: "1234567890123"},
	}

	for _, test := range cases {
		require.Equal(t, test.expected, LeftPad(test.text, '0', test.width))
	}
}
