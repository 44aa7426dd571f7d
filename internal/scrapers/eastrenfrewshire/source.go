package eastrenfrewshire

import (
	"bindays-backend/internal/collection"
	"bindays-backend/internal/components/telemetry"
	"bindays-backend/lib/restyutil"
	libtelemetry "bindays-backend/lib/telemetry"
	"context"
	"net/http/cookiejar"
	"net/url"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	LandingUrl = "https://www.eastrenfrewshire.gov.uk/bin-days"

	defaultTimeout   = time.Second * 30
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"
)

var info = collection.Info{
	Title:       "East Renfrewshire Council",
	Description: "Source for eastrenfrewshire.gov.uk services for East Renfrewshire",
	Url:         LandingUrl,
}

type ClientOptions struct {
	// LandingUrl is the first page of the workflow, defaults to LandingUrl.
	LandingUrl string
	// Timeout applies to each request, defaults to 30 seconds.
	Timeout   time.Duration
	UserAgent string
	// CloudflareBypass wraps the transport so requests look like they come
	// from a browser.
	CloudflareBypass bool
	// Location is what collection dates are reported in, defaults to UTC.
	Location *time.Location
	// Telemetry receives reports about each fetch, defaults to discarding
	// them.
	Telemetry telemetry.API
	// Dump, if set, receives a dump of every request/response pair.
	Dump restyutil.InstrumentOutput
}

// Source fetches the collection schedule of a single property from East
// Renfrewshire Council.
type Source struct {
	creds Credentials
	opts  ClientOptions
	tel   telemetry.API
}

func NewSource(creds Credentials, opts ClientOptions) Source {
	if opts.LandingUrl == "" {
		opts.LandingUrl = LandingUrl
	}
	if opts.Timeout == 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Telemetry == nil {
		opts.Telemetry = telemetry.NopAPI{}
	}

	return Source{
		creds: creds,
		opts:  opts,
		tel:   telemetry.NewScopedAPI("eastrenfrewshire", opts.Telemetry),
	}
}

func (s Source) Info() collection.Info {
	return info
}

// newSession creates an http client with its own cookie jar, a session
// must only be used for a single walk through the workflow.
func (s Source) newSession() (*resty.Client, error) {
	landing, err := url.Parse(s.opts.LandingUrl)
	if err != nil {
		return nil, err
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetCookieJar(jar)
	client.SetTimeout(s.opts.Timeout)
	client.SetHeader("user-agent", s.opts.UserAgent)
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(landing.Hostname()))
	if s.opts.CloudflareBypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}

	telemetry.InstrumentResty(client, s.tel)
	libtelemetry.InstrumentResty(client, "bindays.internal.scrapers.eastrenfrewshire/http")
	restyutil.InstrumentClient(client, "eastrenfrewshire-", s.opts.Dump)

	return client, nil
}

// Fetch walks the council's bin-day form for the property and returns its
// collections in the order the council lists them. A property without a
// schedule yields no collections and no error.
func (s Source) Fetch(ctx context.Context) ([]collection.Collection, error) {
	ctx, span := tracer.Start(ctx, "Source:Fetch")
	defer span.End()
	span.SetAttributes(attribute.String("uprn", s.creds.UPRN()))

	session, err := s.newSession()
	if err != nil {
		span.SetStatus(codes.Error, "failed to create session")
		return nil, err
	}
	defer session.GetClient().CloseIdleConnections()

	final, err := fetchCollectionPage(ctx, session, s.opts.LandingUrl, s.creds)
	if err != nil {
		s.tel.ReportWarning(report_source_fetch, err)
		span.SetStatus(codes.Error, "failed to walk form workflow")
		return nil, err
	}

	payload, err := decodePayload(final.doc)
	if err != nil {
		s.tel.ReportWarning(report_source_fetch, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to decode payload")
		return nil, err
	}
	if len(payload) == 0 {
		s.tel.ReportDebug(report_source_no_schedule, s.creds.UPRN())
	}

	collections, err := Normalize(payload, s.opts.Location)
	if err != nil {
		s.tel.ReportWarning(report_source_fetch, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to normalize payload")
		return nil, err
	}

	s.tel.ReportCount(report_source_collections, int64(len(collections)))
	return collections, nil
}
