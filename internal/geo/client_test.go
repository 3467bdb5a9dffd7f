package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const sampleCSV = `code,state,category,total exports
AL,Alabama,state,1390.63
CA,California,state,21092.73
WA,Washington,state,6124.81
`

func TestStateCodesFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	codes, err := NewClient(srv.URL).StateCodes(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(codes) != 3 {
		t.Fatalf("codes len: got %d, want 3", len(codes))
	}
	if codes["California"] != "CA" {
		t.Errorf("California: got %q, want CA", codes["California"])
	}
}

func TestStateCodesBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).StateCodes(context.Background()); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestStateCodesMissingColumns(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("name,abbr\nCalifornia,CA\n"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).StateCodes(context.Background())
	if err == nil {
		t.Fatal("expected error for missing state/code columns")
	}
	if !strings.Contains(err.Error(), "missing state/code columns") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNewClientDefaultURL(t *testing.T) {
	c := NewClient("")
	if c.url != DefaultStateCodesURL {
		t.Errorf("default url: got %q", c.url)
	}
}
