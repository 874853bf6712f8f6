package omdb

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

func newTestClient(t *testing.T, apiKey string, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)

	client := New(apiKey, slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError})))
	client.http = server.Client()
	client.baseURL = server.URL

	return client, server
}

func TestClient_Rating(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     *float64
	}{
		{
			name:     "rating present",
			response: `{"Response":"True","imdbRating":"8.7"}`,
			want:     float64Ptr(8.7),
		},
		{
			name:     "not found",
			response: `{"Response":"False","Error":"Movie not found!"}`,
			want:     nil,
		},
		{
			name:     "rating not available",
			response: `{"Response":"True","imdbRating":"N/A"}`,
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := func(w http.ResponseWriter, r *http.Request) {
				if got := r.URL.Query().Get("i"); got != "tt0133093" {
					t.Errorf("query i = %q, want tt0133093", got)
				}
				if got := r.URL.Query().Get("apikey"); got != "test-key" {
					t.Errorf("query apikey = %q, want test-key", got)
				}
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(tt.response))
			}

			client, server := newTestClient(t, "test-key", handler)
			defer server.Close()

			got, err := client.Rating(context.Background(), "tt0133093")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if (got == nil) != (tt.want == nil) {
				t.Fatalf("Rating = %v, want %v", got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("Rating = %v, want %v", *got, *tt.want)
			}
		})
	}
}

func TestClient_Rating_NoAPIKey(t *testing.T) {
	called := false
	handler := func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}

	client, server := newTestClient(t, "", handler)
	defer server.Close()

	got, err := client.Rating(context.Background(), "tt0133093")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("Rating = %v, want nil without an API key", *got)
	}
	if called {
		t.Error("client should not hit the network without an API key")
	}
}

func TestClient_Rating_ServerError(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}

	client, server := newTestClient(t, "test-key", handler)
	defer server.Close()

	_, err := client.Rating(context.Background(), "tt0133093")
	if err == nil {
		t.Fatal("expected error on 500 response")
	}
}

func float64Ptr(v float64) *float64 { return &v }
