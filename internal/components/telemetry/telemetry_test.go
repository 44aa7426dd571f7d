package telemetry

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

func TestScopedAPI(t *testing.T) {
	recorder := NewRecorderAPI()
	scoped := NewScopedAPI("outer", NewScopedAPI("inner", recorder))

	scoped.ReportBroken("component.broken", errors.New("boom"))
	scoped.ReportWarning("component.warning")
	scoped.ReportDebug("debug message", 1, 2)
	scoped.ReportCount("component.count", 3)

	require.True(t, recorder.Has("broken", "inner: outer: component.broken"))
	require.True(t, recorder.Has("warning", "inner: outer: component.warning"))
	require.True(t, recorder.Has("debug", "inner: outer: debug message"))
	require.True(t, recorder.Has("count", "inner: outer: component.count"))

	require.Len(t, recorder.Reports(""), 4)
	require.Equal(t, []any{1, 2}, recorder.Reports("debug")[0].Params)
	require.Equal(t, []any{int64(3)}, recorder.Reports("count")[0].Params)
}

func TestNopAPI(t *testing.T) {
	var tel API = NopAPI{}
	require.NotPanics(t, func() {
		NewScopedAPI("scope", tel).ReportBroken("component.broken", errors.New("boom"))
		tel.ReportWarning("component.warning")
		tel.ReportDebug("message")
		tel.ReportCount("component.count", 1)
	})
}

func TestInstrumentResty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer server.Close()

	recorder := NewRecorderAPI()
	client := resty.New()
	InstrumentResty(client, recorder)

	_, err := client.R().Get(server.URL)
	require.NoError(t, err)
	_, err = client.R().Get(server.URL)
	require.NoError(t, err)

	requests := recorder.Reports("debug")
	require.Len(t, requests, 4)
	require.Equal(t, report_resty_request, requests[0].Id)
	require.Equal(t, uint64(1), requests[0].Params[0])
	require.Equal(t, report_resty_response, requests[1].Id)
	require.Equal(t, uint64(1), requests[1].Params[0])
	require.Equal(t, uint64(2), requests[2].Params[0])
	require.Len(t, recorder.Reports("broken"), 0)

	server.Close()
	_, err = client.R().Get(server.URL)
	require.Error(t, err)
	require.True(t, recorder.Has("broken", report_resty_response))
}
