package service

import (
	"bindays-backend/internal/collection"
	"bindays-backend/internal/components/chrono"
	"bindays-backend/internal/components/telemetry"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	events []collection.Collection
	err    error
}

func (f fakeSource) Info() collection.Info {
	return collection.Info{Title: "Fake Council"}
}

func (f fakeSource) Fetch(ctx context.Context) ([]collection.Collection, error) {
	return f.events, f.err
}

type sequentialRandom struct {
	lock sync.Mutex
	next int
}

func (r *sequentialRandom) RequestId() (string, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.next++
	return strconv.Itoa(r.next), nil
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

var testEvents = []collection.Collection{
	{Date: day(2025, time.January, 8), Type: "Grey", Icon: "mdi:trash-can"},
	{Date: day(2024, time.December, 18), Type: "Purple"},
	{Date: day(2025, time.January, 2), Type: "Brown", Icon: "mdi:leaf"},
}

type testServer struct {
	server  *httptest.Server
	tel     *telemetry.RecorderAPI
	lock    sync.Mutex
	created []string
}

func newTestServer(t testing.TB, source fakeSource) *testServer {
	ts := &testServer{tel: telemetry.NewRecorderAPI()}
	factory := func(postcode, uprn string) (collection.Source, error) {
		if uprn == "bad" {
			return nil, errors.New("invalid uprn")
		}
		ts.lock.Lock()
		defer ts.lock.Unlock()
		ts.created = append(ts.created, fmt.Sprintf("%s/%s", postcode, uprn))
		return source, nil
	}

	svc, err := NewService(
		factory,
		WithCustomRandomAPI(&sequentialRandom{}),
		WithCustomTelemetryAPI(ts.tel),
		WithClock(chrono.FixedImpl{Time: time.Date(2025, time.January, 1, 18, 0, 0, 0, time.UTC)}),
	)
	require.NoError(t, err)

	ts.server = httptest.NewServer(svc.Handler())
	t.Cleanup(ts.server.Close)
	return ts
}

func (ts *testServer) get(t testing.TB, path string, query url.Values) (*http.Response, []byte) {
	res, err := http.Get(ts.server.URL + path + "?" + query.Encode())
	require.NoError(t, err)
	defer res.Body.Close()

	var body json.RawMessage
	if res.Header.Get("content-type") == "application/json" {
		require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	}
	return res, body
}

func TestGetCollections(t *testing.T) {
	ts := newTestServer(t, fakeSource{events: testEvents})

	res, body := ts.get(t, "/v1/collections", url.Values{
		"postcode": {"G46 6UG"},
		"uprn":     {"42"},
	})
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "1", res.Header.Get(requestIdHeader))

	var parsed collectionsResponse
	require.NoError(t, json.Unmarshal(body, &parsed))
	expected := collectionsResponse{
		Source: "Fake Council",
		Collections: []collectionJson{
			{Date: "2025-01-08", Type: "Grey", Icon: "mdi:trash-can"},
			{Date: "2024-12-18", Type: "Purple", Icon: ""},
			{Date: "2025-01-02", Type: "Brown", Icon: "mdi:leaf"},
		},
	}
	if diff := cmp.Diff(expected, parsed); diff != "" {
		t.Fatal(diff)
	}
	ts.lock.Lock()
	defer ts.lock.Unlock()
	require.Equal(t, []string{"G46 6UG/42"}, ts.created)
}

func TestGetCollectionsUpcoming(t *testing.T) {
	ts := newTestServer(t, fakeSource{events: testEvents})

	res, body := ts.get(t, "/v1/collections", url.Values{
		"postcode": {"G46 6UG"},
		"uprn":     {"42"},
		"upcoming": {"true"},
	})
	require.Equal(t, http.StatusOK, res.StatusCode)

	var parsed collectionsResponse
	require.NoError(t, json.Unmarshal(body, &parsed))
	require.Equal(t, []collectionJson{
		{Date: "2025-01-02", Type: "Brown", Icon: "mdi:leaf"},
		{Date: "2025-01-08", Type: "Grey", Icon: "mdi:trash-can"},
	}, parsed.Collections)
}

func TestGetCollectionsOfType(t *testing.T) {
	ts := newTestServer(t, fakeSource{events: testEvents})

	res, body := ts.get(t, "/v1/collections", url.Values{
		"postcode": {"G46 6UG"},
		"uprn":     {"42"},
		"type":     {"gray"},
	})
	require.Equal(t, http.StatusOK, res.StatusCode)

	var parsed collectionsResponse
	require.NoError(t, json.Unmarshal(body, &parsed))
	require.Equal(t, []collectionJson{
		{Date: "2025-01-08", Type: "Grey", Icon: "mdi:trash-can"},
	}, parsed.Collections)

	res, body = ts.get(t, "/v1/collections", url.Values{
		"postcode": {"G46 6UG"},
		"uprn":     {"42"},
		"type":     {"Blue"},
	})
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.JSONEq(t, `{"source": "Fake Council", "collections": []}`, string(body))
}

func TestGetCollectionsEmpty(t *testing.T) {
	ts := newTestServer(t, fakeSource{})

	res, body := ts.get(t, "/v1/collections", url.Values{
		"postcode": {"G46 6UG"},
		"uprn":     {"42"},
	})
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.JSONEq(t, `{"source": "Fake Council", "collections": []}`, string(body))
}

func TestGetCollectionsErrors(t *testing.T) {
	ts := newTestServer(t, fakeSource{err: errors.New("landing: unexpected http status 503")})

	cases := []struct {
		query  url.Values
		status int
	}{
		{query: url.Values{"uprn": {"42"}}, status: http.StatusBadRequest},
		{query: url.Values{"postcode": {"G46 6UG"}}, status: http.StatusBadRequest},
		{query: url.Values{"postcode": {"G46 6UG"}, "uprn": {"bad"}}, status: http.StatusBadRequest},
		{query: url.Values{"postcode": {"G46 6UG"}, "uprn": {"42"}}, status: http.StatusBadGateway},
	}
	for _, test := range cases {
		res, body := ts.get(t, "/v1/collections", test.query)
		require.Equal(t, test.status, res.StatusCode, test.query.Encode())

		var parsed errorResponse
		require.NoError(t, json.Unmarshal(body, &parsed))
		require.NotEmpty(t, parsed.Error)
	}

	require.True(t, ts.tel.Has("warning", "service: "+report_service_fetch))
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, fakeSource{})

	res, _ := ts.get(t, "/healthz", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = ts.get(t, "/v1/unknown", nil)
	require.Equal(t, http.StatusNotFound, res.StatusCode)
}
