package eastrenfrewshire

import (
	"bindays-backend/lib/htmlutil"
	"bytes"
	"context"
	"fmt"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/codes"
)

// names of the round-trips of the workflow, used in errors and reports
const (
	stepLanding  = "landing"
	stepAddress  = "submit-address"
	stepProperty = "submit-property"
)

// page is a fetched page of the workflow.
type page struct {
	// url is the final url of the page, after redirects.
	url *url.URL
	doc *goquery.Document
}

// readPage turns the result of a round-trip into a page, any failure to
// get a 2xx response is a TransportError.
func readPage(step string, res *resty.Response, err error) (page, error) {
	if err != nil {
		return page{}, &TransportError{Step: step, Err: err}
	}
	if !res.IsSuccess() {
		return page{}, &TransportError{Step: step, Status: res.StatusCode()}
	}

	pageUrl, err := url.Parse(res.Request.URL)
	if err != nil {
		return page{}, &TransportError{Step: step, Err: err}
	}
	if res.RawResponse != nil && res.RawResponse.Request != nil {
		pageUrl = res.RawResponse.Request.URL
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return page{}, fmt.Errorf("%s: parse html: %w", step, err)
	}

	return page{
		url: pageUrl,
		doc: doc,
	}, nil
}

// form finds the workflow form on the page and returns where it submits to
// along with the tokens that submission must carry.
func (p page) form(step string) (string, FormTokens, error) {
	form := htmlutil.FindById(p.doc, workflowFormId)
	if form.Length() == 0 {
		return "", FormTokens{}, &FormNotFoundError{Step: step, FormId: workflowFormId}
	}

	action, ok, err := htmlutil.ResolveAttr(form, "action", p.url)
	if err != nil {
		return "", FormTokens{}, fmt.Errorf("%s: parse form action: %w", step, err)
	}
	if !ok {
		// no action means no tokens
		action = &url.URL{}
	}

	tokens, err := ExtractFormTokens(action.String())
	if err != nil {
		return "", FormTokens{}, fmt.Errorf("%s: %w", step, err)
	}
	return action.String(), tokens, nil
}

func fetchLanding(ctx context.Context, http *resty.Client, landingUrl string) (page, error) {
	ctx, span := tracer.Start(ctx, "fetchLanding")
	defer span.End()

	res, err := http.R().
		SetContext(ctx).
		Get(landingUrl)
	p, err := readPage(stepLanding, res, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch landing page")
		return page{}, err
	}
	return p, nil
}

// submit posts the workflow form found on `from` and returns the page the
// workflow moves to.
func submit(
	ctx context.Context,
	http *resty.Client,
	from page,
	step string,
	submission pageSubmission,
	input map[string]string,
) (page, error) {
	ctx, span := tracer.Start(ctx, step)
	defer span.End()

	action, tokens, err := from.form(step)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read workflow form")
		return page{}, err
	}

	res, err := http.R().
		SetContext(ctx).
		SetFormData(submission.formData(tokens, input)).
		Post(action)
	next, err := readPage(step, res, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to submit workflow form")
		return page{}, err
	}
	return next, nil
}

// fetchCollectionPage walks the workflow from the landing page to the
// page holding the collection schedule of a property.
func fetchCollectionPage(ctx context.Context, http *resty.Client, landingUrl string, creds Credentials) (page, error) {
	landing, err := fetchLanding(ctx, http, landingUrl)
	if err != nil {
		return page{}, err
	}

	addresses, err := submit(ctx, http, landing, stepAddress, addressSubmission, map[string]string{
		postcodeField: creds.Postcode(),
	})
	if err != nil {
		return page{}, err
	}

	return submit(ctx, http, addresses, stepProperty, propertySubmission, map[string]string{
		uprnField: creds.UPRN(),
	})
}
