package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/souvikmndl/ott-records/internal/data"
	"github.com/souvikmndl/ott-records/internal/data/datatest"
)

func newTestApplication(t *testing.T) *application {
	t.Helper()

	var cfg config
	cfg.env = "development"
	cfg.cors.trustedOrigins = []string{"http://localhost:3000"}

	return &application{
		config: cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		models: datatest.NewModels(t),
	}
}

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	t.Helper()

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	return &testServer{ts}
}

// do sends a request with an optional JSON body and returns the status, headers and
// the decoded response body
func (ts *testServer) do(t *testing.T, method, urlPath string, body any) (int, http.Header, map[string]any) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		js, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(js)
	}

	req, err := http.NewRequest(method, ts.URL+urlPath, reader)
	require.NoError(t, err)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rs, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer rs.Body.Close()

	raw, err := io.ReadAll(rs.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if rs.Header.Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(raw, &decoded), string(raw))
	}

	return rs.StatusCode, rs.Header, decoded
}

// titles pulls the title of every record out of a decoded list/search envelope
func titles(t *testing.T, env map[string]any) []string {
	t.Helper()

	rows, ok := env["data"].([]any)
	require.True(t, ok, "data is not an array: %v", env["data"])

	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.(map[string]any)["title"].(string))
	}

	return out
}

func idOf(t *testing.T, record any) int64 {
	t.Helper()

	m, ok := record.(map[string]any)
	require.True(t, ok, "not a record: %v", record)

	return int64(m["id"].(float64))
}

func defaultFilters() data.Filters {
	return data.Filters{Page: data.DefaultPage, Limit: data.DefaultLimit}
}
