package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestShutdownZeroValue(t *testing.T) {
	require.NoError(t, Telemetry{}.Shutdown(context.Background()))
}

func TestTransport(t *testing.T) {
	kind, endpoint := OtlpConnConfig{
		GrpcEndpoint: "http://localhost:4317",
		HttpEndpoint: "http://localhost:4318",
	}.transport()
	require.Equal(t, "grpc", kind)
	require.Equal(t, "http://localhost:4317", endpoint)

	kind, endpoint = OtlpConnConfig{HttpEndpoint: "http://localhost:4318"}.transport()
	require.Equal(t, "http", kind)
	require.Equal(t, "http://localhost:4318", endpoint)
}

func TestInstrumentResty(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := trace.NewTracerProvider(trace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	defer otel.SetTracerProvider(previous)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := resty.New()
	InstrumentResty(client, "test")

	_, err := client.R().Get(server.URL + "/")
	require.NoError(t, err)
	_, err = client.R().Get(server.URL + "/missing")
	require.NoError(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	require.Equal(t, "http GET", spans[0].Name())
	require.Equal(t, codes.Unset, spans[0].Status().Code)
	require.Equal(t, codes.Error, spans[1].Status().Code)
}
