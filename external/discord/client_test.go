package discord

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestClient_AuthorizeURL(t *testing.T) {
	client := NewClient(ClientConfig{
		ClientID:    "app-1",
		RedirectURI: "http://localhost:8080/callback",
	})

	parsed, err := url.Parse(client.AuthorizeURL("xyz"))
	if err != nil {
		t.Fatalf("parse authorize url: %v", err)
	}
	if parsed.Path != "/oauth2/authorize" {
		t.Fatalf("unexpected path: %q", parsed.Path)
	}

	query := parsed.Query()
	if query.Get("client_id") != "app-1" {
		t.Fatalf("unexpected client_id: %q", query.Get("client_id"))
	}
	if query.Get("response_type") != "code" || query.Get("scope") != "identify" {
		t.Fatalf("unexpected oauth params: %v", query)
	}
	if query.Get("state") != "xyz" {
		t.Fatalf("unexpected state: %q", query.Get("state"))
	}
}

func TestClient_AuthorizeURL_OmitsBlankState(t *testing.T) {
	client := NewClient(ClientConfig{ClientID: "app-1"})

	parsed, err := url.Parse(client.AuthorizeURL("  "))
	if err != nil {
		t.Fatalf("parse authorize url: %v", err)
	}
	if parsed.Query().Has("state") {
		t.Fatal("blank state must be omitted")
	}
}

func TestClient_ExchangeCode_SendsFormBody(t *testing.T) {
	var gotContentType string
	var gotForm url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		gotForm, _ = url.ParseQuery(string(raw))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"token-123","token_type":"Bearer"}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:      server.URL,
		ClientID:     "app-1",
		ClientSecret: "shh",
		RedirectURI:  "http://localhost:8080/callback",
	})

	token, err := client.ExchangeCode(context.Background(), "auth-code")
	if err != nil {
		t.Fatalf("exchange code: %v", err)
	}
	if token != "token-123" {
		t.Fatalf("unexpected token: %q", token)
	}

	if gotContentType != "application/x-www-form-urlencoded" {
		t.Fatalf("unexpected content type: %q", gotContentType)
	}
	if gotForm.Get("grant_type") != "authorization_code" {
		t.Fatalf("unexpected grant_type: %q", gotForm.Get("grant_type"))
	}
	if gotForm.Get("code") != "auth-code" || gotForm.Get("client_secret") != "shh" {
		t.Fatalf("unexpected form: %v", gotForm)
	}
	if gotForm.Get("redirect_uri") != "http://localhost:8080/callback" {
		t.Fatalf("unexpected redirect_uri: %q", gotForm.Get("redirect_uri"))
	}
}

func TestClient_ExchangeCode_MissingToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token_type":"Bearer"}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})

	_, err := client.ExchangeCode(context.Background(), "auth-code")
	if err == nil {
		t.Fatal("expected error when payload has no access token")
	}
}

func TestClient_ExchangeCode_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})

	_, err := client.ExchangeCode(context.Background(), "expired-code")
	if err == nil {
		t.Fatal("expected error for 400 response")
	}
	if !strings.Contains(err.Error(), "status=400") {
		t.Fatalf("expected status in error, got %v", err)
	}
}

func TestClient_FetchProfile_DecodesUser(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"428086","username":"mello","global_name":"Mello","avatar":"abc123"}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})

	profile, err := client.FetchProfile(context.Background(), "token-123")
	if err != nil {
		t.Fatalf("fetch profile: %v", err)
	}

	if gotAuth != "Bearer token-123" {
		t.Fatalf("unexpected authorization header: %q", gotAuth)
	}
	if profile.ID != 428086 || profile.Username != "mello" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
	if profile.DisplayName != "Mello" || profile.Avatar != "abc123" {
		t.Fatalf("unexpected profile details: %+v", profile)
	}
}

func TestClient_FetchProfile_NonNumericID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"not-a-number","username":"mello"}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})

	_, err := client.FetchProfile(context.Background(), "token-123")
	if err == nil {
		t.Fatal("expected error for non-numeric profile id")
	}
}
