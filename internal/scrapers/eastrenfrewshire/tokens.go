package eastrenfrewshire

import (
	"fmt"
	"net/url"
)

// names of the query parameters the workflow engine puts on a form's action
const (
	tokenPageSessionId = "pageSessionId"
	tokenSessionId     = "fsid"
	tokenNonce         = "fsn"
)

// FormTokens correlate a form submission with the page it was read from.
// They are only valid for the next submission and must be read again from
// every page.
type FormTokens struct {
	PageSessionId string
	SessionId     string
	Nonce         string
}

// ExtractFormTokens reads the form tokens from the query string of a form's
// submission url. Repeated parameters resolve to their first non-empty value.
func ExtractFormTokens(action string) (FormTokens, error) {
	link, err := url.Parse(action)
	if err != nil {
		return FormTokens{}, fmt.Errorf("parse form action: %w", err)
	}
	query := link.Query()

	pageSessionId, err := firstValue(query, tokenPageSessionId)
	if err != nil {
		return FormTokens{}, err
	}
	sessionId, err := firstValue(query, tokenSessionId)
	if err != nil {
		return FormTokens{}, err
	}
	nonce, err := firstValue(query, tokenNonce)
	if err != nil {
		return FormTokens{}, err
	}

	return FormTokens{
		PageSessionId: pageSessionId,
		SessionId:     sessionId,
		Nonce:         nonce,
	}, nil
}

func firstValue(query url.Values, name string) (string, error) {
	for _, v := range query[name] {
		if v != "" {
			return v, nil
		}
	}
	return "", &MissingTokenError{Token: name}
}
