package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDispatcherPrefersRemote(t *testing.T) {
	var gotPath, gotAuth string
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"source":"remote"}`))
	}))
	defer remote.Close()

	d := NewDispatcher(remote.URL, testRouter(t))
	d.BearerToken = "tok-123"

	resp, err := d.Do(context.Background(), Request{Method: "GET", Path: "/api/meta"})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if gotPath != "/api/meta" {
		t.Fatalf("remote saw path %q", gotPath)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("auth header = %q", gotAuth)
	}
	body, ok := resp.Body.(map[string]any)
	if !ok || body["source"] != "remote" {
		t.Fatalf("body = %v", resp.Body)
	}
}

func TestDispatcherFallsBackOnServerError(t *testing.T) {
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer remote.Close()

	d := NewDispatcher(remote.URL, testRouter(t))
	resp, err := d.Do(context.Background(), Request{Method: "GET", Path: "/api/meta"})
	if err != nil {
		t.Fatalf("fallback failed: %v", err)
	}
	if resp.Status != 200 {
		t.Fatalf("status = %d", resp.Status)
	}
}

func TestDispatcherFallsBackOnConnectionError(t *testing.T) {
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	remote.Close() // nothing listening anymore

	d := NewDispatcher(remote.URL, testRouter(t))
	resp, err := d.Do(context.Background(), Request{Method: "GET", Path: "/api/meta"})
	if err != nil {
		t.Fatalf("fallback failed: %v", err)
	}
	if resp.Status != 200 {
		t.Fatalf("status = %d", resp.Status)
	}
}

func TestDispatcherLocalOnlyWithoutBaseURL(t *testing.T) {
	d := NewDispatcher("", testRouter(t))
	resp, err := d.Do(context.Background(), Request{Method: "GET", Path: "/api/meta"})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if resp.Status != 200 {
		t.Fatalf("status = %d", resp.Status)
	}
}

func TestTranslateHTTPError(t *testing.T) {
	cases := []struct {
		status int
		body   string
		want   string
	}{
		{500, `{"error":"stack trace here"}`, "Server is temporarily unavailable"},
		{503, ``, "Server is temporarily unavailable"},
		{401, ``, "You are not authorized"},
		{403, ``, "You are not authorized"},
		{404, ``, "Content not found"},
		{422, `{"error":"SEAT_ALREADY_BOOKED"}`, "SEAT_ALREADY_BOOKED (HTTP 422)"},
		{400, `{"message":"bad payload"}`, "bad payload (HTTP 400)"},
		{418, `not json`, "Request failed (HTTP 418)"},
	}
	for _, c := range cases {
		if got := TranslateHTTPError(c.status, []byte(c.body)); got != c.want {
			t.Errorf("TranslateHTTPError(%d, %q) = %q, want %q", c.status, c.body, got, c.want)
		}
	}
}
