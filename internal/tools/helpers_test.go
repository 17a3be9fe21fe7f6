package tools

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/agentmesh/agentmesh-mcp/internal/registry"
)

func jsonDecodeBody(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// newUnreachableService builds a service whose registry base URL points at
// a server that has already shut down.
func newUnreachableService(t *testing.T) *Service {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	session := registry.NewSession()
	client := registry.NewClient(baseURL, session, nil, testLogger())

	return NewService(client, session, testLogger())
}
