package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth, gotReqID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{"id":1,"name":"Ada","email":"ada@example.com"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, func() string { return "tok-123" })

	var u User
	if err := c.Get(context.Background(), "/api/auth/me", &u); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want Bearer tok-123", gotAuth)
	}
	if gotReqID == "" {
		t.Error("X-Request-ID header missing")
	}
	if u.Name != "Ada" {
		t.Errorf("Name = %q, want Ada", u.Name)
	}
}

func TestClient_AnonymousOmitsAuthHeader(t *testing.T) {
	var gotAuth string
	hasAuth := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, hasAuth = r.Header["Authorization"]
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	if err := c.Get(context.Background(), "/", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hasAuth {
		t.Errorf("Authorization header present (%q), want absent", gotAuth)
	}
}

func TestClient_UnauthorizedSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	err := c.Get(context.Background(), "/api/trips", nil)
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
}

func TestClient_NotFoundSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	err := c.Get(context.Background(), "/api/trips/999", nil)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestClient_ServerDetailSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"end_date must be after start_date"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	err := c.Post(context.Background(), "/api/trips", TripCreate{}, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if got := Detail(err); got != "end_date must be after start_date" {
		t.Errorf("Detail = %q", got)
	}
}

func TestClient_NonStringDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail":[{"loc":["body","title"],"msg":"field required"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	err := c.Post(context.Background(), "/api/trips", TripCreate{}, nil)
	if got := Detail(err); got == "" {
		t.Error("Detail empty, want raw validation payload")
	}
}

func TestClient_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewClient(srv.URL, nil)
	if err := c.Get(context.Background(), "/api/trips", nil); err == nil {
		t.Error("expected transport error")
	}
}

func TestClient_NilOutIgnoresBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	if err := c.Delete(context.Background(), "/api/trips/1"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
