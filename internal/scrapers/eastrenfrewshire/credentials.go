package eastrenfrewshire

import (
	"bindays-backend/lib/textutil"
	"strconv"
	"strings"
)

const uprnWidth = 12

// Credentials identify the property whose schedule is fetched.
type Credentials struct {
	postcode string
	uprn     string
}

// NewCredentials validates a UPRN and zero-pads it to 12 characters. The
// postcode is passed to the council as-is.
func NewCredentials(postcode, uprn string) (Credentials, error) {
	uprn = strings.TrimSpace(uprn)
	if uprn == "" {
		return Credentials{}, ErrInvalidUPRN
	}
	for _, c := range uprn {
		if c < '0' || c > '9' {
			return Credentials{}, ErrInvalidUPRN
		}
	}
	return Credentials{
		postcode: postcode,
		uprn:     textutil.LeftPad(uprn, '0', uprnWidth),
	}, nil
}

// NewCredentialsFromNumber is NewCredentials for a numeric UPRN.
func NewCredentialsFromNumber(postcode string, uprn uint64) Credentials {
	creds, _ := NewCredentials(postcode, strconv.FormatUint(uprn, 10))
	return creds
}

func (c Credentials) Postcode() string {
	return c.postcode
}

// UPRN returns the zero-padded property reference.
func (c Credentials) UPRN() string {
	return c.uprn
}
