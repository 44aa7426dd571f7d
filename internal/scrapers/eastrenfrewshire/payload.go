package eastrenfrewshire

import (
	"bindays-backend/lib/htmlutil"
	"bindays-backend/lib/textutil"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Payload is the decoded collection schedule embedded in the final page of
// the workflow. It is kept semi-structured, Normalize checks its shape.
//
// An empty Payload means the page carried no schedule.
type Payload map[string]json.RawMessage

// variableExtractor pulls the value of a string variable assigned in an
// inline script, ex. `var NAME = "value";`.
type variableExtractor struct {
	pattern *regexp.Regexp
}

func newVariableExtractor(name string) variableExtractor {
	return variableExtractor{
		pattern: regexp.MustCompile(fmt.Sprintf(`(?ms)var %s = "(.*?)";$`, regexp.QuoteMeta(name))),
	}
}

// Extract returns the raw value of the variable, found is false when no
// script assigns it.
func (e variableExtractor) Extract(doc *goquery.Document) (value string, found bool) {
	script := htmlutil.FindByText(doc, "script", e.pattern)
	if script.Length() == 0 {
		return "", false
	}
	groups := e.pattern.FindStringSubmatch(htmlutil.GetText(script.Nodes[0]))
	if len(groups) < 2 {
		return "", false
	}
	return groups[1], true
}

var serializedVariables = newVariableExtractor(serializedVariablesName)

// DecodePayload finds the base64 encoded json schedule in the html of the
// collection page and decodes it. A page without the schedule decodes to an
// empty Payload and no error.
func DecodePayload(html string) (Payload, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return decodePayload(doc)
}

func decodePayload(doc *goquery.Document) (Payload, error) {
	encoded, found := serializedVariables.Extract(doc)
	if !found {
		return Payload{}, nil
	}

	// the value may be wrapped over several lines
	decoded, err := base64.StdEncoding.DecodeString(textutil.StripWhitespace(encoded))
	if err != nil {
		return nil, &PayloadDecodeError{Err: fmt.Errorf("base64: %w", err)}
	}

	var payload Payload
	err = json.Unmarshal(decoded, &payload)
	if err != nil {
		return nil, &PayloadDecodeError{Err: fmt.Errorf("json: %w", err)}
	}
	if payload == nil {
		// "null"
		payload = Payload{}
	}
	return payload, nil
}
