package auth

import (
	"net/http/httptest"
	"testing"
)

func TestTokenIdentityUserID(t *testing.T) {
	id := NewTokenIdentity(map[string]string{"tok-abc": "user-1"})

	cases := []struct {
		header string
		want   string
	}{
		{"Bearer tok-abc", "user-1"},
		{"Bearer unknown", ""},
		{"tok-abc", ""}, // missing scheme
		{"", ""},
	}
	for i, tc := range cases {
		r := httptest.NewRequest("GET", "/", nil)
		if tc.header != "" {
			r.Header.Set("Authorization", tc.header)
		}
		if got := id.UserID(r); got != tc.want {
			t.Fatalf("case %d: got %q, want %q", i, got, tc.want)
		}
	}
}

func TestParseTokenPairs(t *testing.T) {
	got := ParseTokenPairs("tok-a:alice, tok-b:bob,broken,:nouser,notok:")
	if len(got) != 2 {
		t.Fatalf("parsed %d pairs, want 2: %v", len(got), got)
	}
	if got["tok-a"] != "alice" || got["tok-b"] != "bob" {
		t.Fatalf("unexpected mapping: %v", got)
	}
}
