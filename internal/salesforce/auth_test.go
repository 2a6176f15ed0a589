package salesforce_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/knowledge-sync-api/internal/config"
	"github.com/knowledge-sync-api/internal/salesforce"
)

func authConfig(tokenURL string) *config.SalesforceConfig {
	return &config.SalesforceConfig{
		ClientID:      "client-id",
		ClientSecret:  "client-secret",
		Username:      "user@example.com",
		Password:      "hunter2",
		SecurityToken: "sectoken",
		TokenURL:      tokenURL,
	}
}

func TestAuthenticate(t *testing.T) {
	var gotForm map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("ParseForm failed: %v", err)
		}
		gotForm = map[string]string{
			"grant_type": r.PostFormValue("grant_type"),
			"client_id":  r.PostFormValue("client_id"),
			"username":   r.PostFormValue("username"),
			"password":   r.PostFormValue("password"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"00D-test-token","token_type":"Bearer"}`))
	}))
	defer srv.Close()

	auth := salesforce.NewAuthenticator(authConfig(srv.URL), zerolog.Nop())

	token, err := auth.Authenticate(context.Background())
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if token != "00D-test-token" {
		t.Errorf("Expected token 00D-test-token, got %s", token)
	}

	if gotForm["grant_type"] != "password" {
		t.Errorf("Expected grant_type password, got %s", gotForm["grant_type"])
	}
	if gotForm["client_id"] != "client-id" {
		t.Errorf("Expected client_id in form, got %s", gotForm["client_id"])
	}
	if gotForm["username"] != "user@example.com" {
		t.Errorf("Expected username in form, got %s", gotForm["username"])
	}
	// Security token must be appended directly to the password.
	if gotForm["password"] != "hunter2sectoken" {
		t.Errorf("Expected concatenated password, got %s", gotForm["password"])
	}
}

func TestAuthenticateMissingToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token_type":"Bearer"}`))
	}))
	defer srv.Close()

	auth := salesforce.NewAuthenticator(authConfig(srv.URL), zerolog.Nop())

	if _, err := auth.Authenticate(context.Background()); err == nil {
		t.Fatal("Expected error when response has no access_token")
	}
}

func TestAuthenticateServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_grant","error_description":"authentication failure"}`))
	}))
	defer srv.Close()

	auth := salesforce.NewAuthenticator(authConfig(srv.URL), zerolog.Nop())

	if _, err := auth.Authenticate(context.Background()); err == nil {
		t.Fatal("Expected error for non-2xx token response")
	}
}
