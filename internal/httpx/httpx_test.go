package httpx

import (
	"net/url"
	"strings"
	"testing"
)

type payload struct {
	Name string `json:"name"`
}

func TestDecodeJSONIgnoresUnknownFields(t *testing.T) {
	var p payload
	if err := DecodeJSON(strings.NewReader(`{"name":"x","extra":1}`), &p); err != nil {
		t.Fatalf("DecodeJSON error: %v", err)
	}
	if p.Name != "x" {
		t.Fatalf("unexpected name %q", p.Name)
	}
}

func TestDecodeJSONStrictRejectsUnknownFields(t *testing.T) {
	var p payload
	if err := DecodeJSONStrict(strings.NewReader(`{"name":"x","extra":1}`), &p); err == nil {
		t.Fatalf("expected error for unknown field")
	}
}

func TestDecodeJSONRejectsTrailingData(t *testing.T) {
	var p payload
	if err := DecodeJSON(strings.NewReader(`{"name":"x"}{"name":"y"}`), &p); err == nil {
		t.Fatalf("expected error for second object")
	}
}

func TestParseLimitOffset(t *testing.T) {
	limit, offset, err := ParseLimitOffset(url.Values{}, 50, 200)
	if err != nil || limit != 50 || offset != 0 {
		t.Fatalf("unexpected defaults: %d %d %v", limit, offset, err)
	}

	limit, offset, err = ParseLimitOffset(url.Values{"limit": {"500"}, "offset": {"10"}}, 50, 200)
	if err != nil || limit != 200 || offset != 10 {
		t.Fatalf("unexpected clamp: %d %d %v", limit, offset, err)
	}

	if _, _, err := ParseLimitOffset(url.Values{"limit": {"0"}}, 50, 200); err == nil {
		t.Fatalf("expected invalid limit")
	}
	if _, _, err := ParseLimitOffset(url.Values{"offset": {"-1"}}, 50, 200); err == nil {
		t.Fatalf("expected invalid offset")
	}
}
