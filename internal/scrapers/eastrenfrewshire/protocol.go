package eastrenfrewshire

import "maps"

// Every name in here belongs to the council's form workflow engine. If the
// council changes the form, this is the file that changes.

const (
	// id of the <form> element on every page of the workflow
	workflowFormId = "RESIDUALWASTEV2_FORM"
	fieldPrefix    = "RESIDUALWASTEV2"

	// base64 encoded "{}"
	emptyVariables = "e30="

	postcodeField = fieldPrefix + "_PAGE1_POSTCODE"
	uprnField     = fieldPrefix + "_PAGE2_UPRN"

	// name of the script variable holding the base64 encoded schedule
	serializedVariablesName = fieldPrefix + "SerializedVariables"
)

// pageSubmission is the set of fields the workflow engine requires to move
// from one page of the form to the next.
type pageSubmission struct {
	Name       string
	Instance   string
	NextAction string
	// fixed page specific fields, they encode routing state of the workflow
	Fields map[string]string
}

// address lookup, submitted from the landing page
var addressSubmission = pageSubmission{
	Name:       "PAGE1",
	Instance:   "0",
	NextAction: fieldPrefix + "_PAGE1_FIELD199",
}

// property selection, submitted from the address list page
var propertySubmission = pageSubmission{
	Name:       "PAGE2",
	Instance:   "1",
	NextAction: fieldPrefix + "_PAGE2_FIELD206",
	Fields: map[string]string{
		fieldPrefix + "_PAGE2_FIELD201": "true",
		fieldPrefix + "_PAGE2_FIELD202": "false",
		fieldPrefix + "_PAGE2_FIELD203": "false",
	},
}

// formData builds the request body of a submission. `input` holds the user
// supplied fields and is applied last.
func (p pageSubmission) formData(tokens FormTokens, input map[string]string) map[string]string {
	data := map[string]string{
		fieldPrefix + "_PAGESESSIONID":   tokens.PageSessionId,
		fieldPrefix + "_SESSIONID":       tokens.SessionId,
		fieldPrefix + "_NONCE":           tokens.Nonce,
		fieldPrefix + "_VARIABLES":       emptyVariables,
		fieldPrefix + "_PAGENAME":        p.Name,
		fieldPrefix + "_PAGEINSTANCE":    p.Instance,
		fieldPrefix + "_FORMACTION_NEXT": p.NextAction,
	}
	maps.Copy(data, p.Fields)
	maps.Copy(data, input)
	return data
}
