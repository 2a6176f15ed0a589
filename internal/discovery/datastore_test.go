package discovery_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"google.golang.org/api/option"

	"github.com/knowledge-sync-api/internal/config"
	"github.com/knowledge-sync-api/internal/discovery"
)

func discoveryConfig() *config.DiscoveryConfig {
	return &config.DiscoveryConfig{
		ProjectID:            "test-project",
		Location:             "global",
		DataStoreID:          "sf-articles",
		DataStoreDisplayName: "Salesforce Articles",
	}
}

func newTestService(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	return httptest.NewServer(handler)
}

func adminClient(t *testing.T, srv *httptest.Server) *discovery.AdminClient {
	t.Helper()
	svc, err := discovery.NewService(
		context.Background(),
		option.WithEndpoint(srv.URL),
		option.WithoutAuthentication(),
	)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return discovery.NewAdminClient(svc, discoveryConfig(), zerolog.Nop())
}

const dataStoresPath = "/v1/projects/test-project/locations/global/collections/default_collection/dataStores"

func TestEnsureDataStoreAlreadyExists(t *testing.T) {
	createCalls := 0

	mux := http.NewServeMux()
	mux.HandleFunc(dataStoresPath, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]interface{}{
				"dataStores": []map[string]string{
					{"name": "projects/123/locations/global/collections/default_collection/dataStores/other-store"},
					{"name": "projects/123/locations/global/collections/default_collection/dataStores/sf-articles"},
				},
			})
		case http.MethodPost:
			createCalls++
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"name":"operations/create-1"}`))
		}
	})
	srv := newTestService(t, mux)
	defer srv.Close()

	admin := adminClient(t, srv)

	if err := admin.EnsureDataStore(context.Background()); err != nil {
		t.Fatalf("EnsureDataStore failed: %v", err)
	}
	if createCalls != 0 {
		t.Errorf("Expected no create call for existing data store, got %d", createCalls)
	}

	// Second call is an idempotent no-op as well.
	if err := admin.EnsureDataStore(context.Background()); err != nil {
		t.Fatalf("Second EnsureDataStore failed: %v", err)
	}
	if createCalls != 0 {
		t.Errorf("Expected no create call on repeat, got %d", createCalls)
	}
}

func TestEnsureDataStoreCreates(t *testing.T) {
	createCalls := 0
	var createdID string
	var created map[string]interface{}

	mux := http.NewServeMux()
	mux.HandleFunc(dataStoresPath, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{}`))
		case http.MethodPost:
			createCalls++
			createdID = r.URL.Query().Get("dataStoreId")
			json.NewDecoder(r.Body).Decode(&created)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"name":"operations/create-1"}`))
		}
	})
	srv := newTestService(t, mux)
	defer srv.Close()

	admin := adminClient(t, srv)

	if err := admin.EnsureDataStore(context.Background()); err != nil {
		t.Fatalf("EnsureDataStore failed: %v", err)
	}
	if createCalls != 1 {
		t.Fatalf("Expected exactly one create call, got %d", createCalls)
	}
	if createdID != "sf-articles" {
		t.Errorf("Expected dataStoreId sf-articles, got %s", createdID)
	}
	if created["displayName"] != "Salesforce Articles" {
		t.Errorf("Expected display name in payload, got %v", created["displayName"])
	}
	if created["industryVertical"] != "GENERIC" {
		t.Errorf("Expected GENERIC industry vertical, got %v", created["industryVertical"])
	}
}

func TestEnsureDataStoreListError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(dataStoresPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":403,"message":"permission denied","status":"PERMISSION_DENIED"}}`))
	})
	srv := newTestService(t, mux)
	defer srv.Close()

	admin := adminClient(t, srv)

	if err := admin.EnsureDataStore(context.Background()); err == nil {
		t.Fatal("Expected error when listing fails")
	}
}
