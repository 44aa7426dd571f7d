package restyutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

type memoryOutput struct {
	lock     sync.Mutex
	messages map[string]string
}

func (o *memoryOutput) Write(id string, contents string) {
	o.lock.Lock()
	defer o.lock.Unlock()
	o.messages[id] = contents
}

func TestInstrumentClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Test", "yes")
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short and stout"))
	}))
	defer server.Close()

	out := &memoryOutput{messages: map[string]string{}}
	client := resty.New()
	InstrumentClient(client, "test-", out)

	_, err := client.R().
		SetFormData(map[string]string{"field": "value"}).
		Post(server.URL + "/submit")
	require.NoError(t, err)
	_, err = client.R().Get(server.URL + "/page")
	require.NoError(t, err)

	require.Len(t, out.messages, 2)
	first := out.messages["test-001.txt"]
	require.Contains(t, first, "POST "+server.URL+"/submit")
	require.Contains(t, first, "field=value")
	require.Contains(t, first, "418")
	require.Contains(t, first, "X-Test: yes")
	require.Contains(t, first, "short and stout")
	require.Contains(t, out.messages["test-002.txt"], "GET "+server.URL+"/page")
}

func TestFormatRequestBodyWithoutBody(t *testing.T) {
	require.Equal(t, "", formatRequestBody(nil))

	req, err := http.NewRequest(http.MethodGet, "http://example.com", nil)
	require.NoError(t, err)
	require.Equal(t, "", formatRequestBody(req))

	// GetBody set but nothing to read, like resty does for a bare GET
	req.GetBody = func() (io.ReadCloser, error) { return nil, nil }
	require.Equal(t, "", formatRequestBody(req))
	req.Body = http.NoBody
	require.Equal(t, "", formatRequestBody(req))

	req, err = http.NewRequest(http.MethodPost, "http://example.com", strings.NewReader("a=b"))
	require.NoError(t, err)
	require.Equal(t, "a=b", formatRequestBody(req))
	// reading it for the dump leaves the body intact
	require.Equal(t, "a=b", formatRequestBody(req))
}

func TestInstrumentClientNilOutput(t *testing.T) {
	client := resty.New()
	InstrumentClient(client, "", nil)
}

func TestFilesystemOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dump")

	out, err := NewFilesystemOutput(dir)
	require.NoError(t, err)
	out.Write("001.txt", "hello")

	contents, err := os.ReadFile(filepath.Join(dir, "001.txt"))
	require.NoError(t, err)
	require.Equal(t, "hello", string(contents))
}
