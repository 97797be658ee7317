package branch

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	syncdom "github.com/chainsync/backend/internal/domain/sync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEndpoint(t *testing.T, baseURL string) syncdom.BranchEndpoint {
	t.Helper()
	endpoint, err := syncdom.NewBranchEndpoint("BR-1", "Downtown", baseURL, "branch-token")
	require.NoError(t, err)
	return *endpoint
}

func TestClientPush(t *testing.T) {
	var gotPath, gotAuth, gotContentType string
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(5 * time.Second)
	payload := map[string]string{"erp_id": "E-1", "name": "Acme"}

	err := client.Push(context.Background(), testEndpoint(t, server.URL), "/api/v1/sync/customers", payload)
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/sync/customers", gotPath)
	assert.Equal(t, "Bearer branch-token", gotAuth)
	assert.Equal(t, "application/json", gotContentType)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(gotBody, &decoded))
	assert.Equal(t, payload, decoded)
}

func TestClientPushNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"unknown sku"}`))
	}))
	defer server.Close()

	client := NewClient(5 * time.Second)
	err := client.Push(context.Background(), testEndpoint(t, server.URL), "/api/v1/sync/products", map[string]string{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "branch BR-1 returned 422")
	assert.Contains(t, err.Error(), "unknown sku")
}

func TestClientPushRespectsContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(5 * time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := client.Push(ctx, testEndpoint(t, server.URL), "/api/v1/sync/customers", map[string]string{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClientPushUnreachableBranch(t *testing.T) {
	client := NewClient(time.Second)
	err := client.Push(context.Background(), testEndpoint(t, "http://127.0.0.1:1"), "/api/v1/sync/customers", map[string]string{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "push to BR-1")
}
