package eastrenfrewshire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewCredentials(t *testing.T) {
	cases := []struct {
		uprn     string
		expected string
	}{
		{uprn: "42", expected: "000000000042"},
		{uprn: " 131045712 ", expected: "000131045712"},
		{uprn: "000000000042", expected: "000000000042"},
		{uprn: "1234567890123", expected: "1234567890123"},
	}

	for _, test := range cases {
		creds, err := NewCredentials("G76 7RB", test.uprn)
		require.NoError(t, err)
		require.Equal(t, test.expected, creds.UPRN())
		require.Len(t, creds.UPRN(), max(12, len(test.expected)))
		require.Equal(t, "G76 7RB", creds.Postcode())
	}
}

func TestNewCredentialsInvalid(t *testing.T) {
	for _, uprn := range []string{"", "  ", "12a", "-42", "4.2"} {
		_, err := NewCredentials("G76 7RB", uprn)
		require.ErrorIs(t, err, ErrInvalidUPRN, uprn)
	}
}

func TestNewCredentialsFromNumber(t *testing.T) {
	creds := NewCredentialsFromNumber("G76 7RB", 42)
	require.Equal(t, "000000000042", creds.UPRN())

	creds = NewCredentialsFromNumber("", 0)
	require.Equal(t, "000000000000", creds.UPRN())
}
