package identity

import (
	"net/http/httptest"
	"testing"

	"freelance-market-api/internal/common"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewManager("test-secret")

	token, err := m.GenerateToken("8a2f0f1d-0000-4000-8000-000000000001", common.RoleCustomer)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserId != "8a2f0f1d-0000-4000-8000-000000000001" {
		t.Fatalf("userId = %s", claims.UserId)
	}
	if claims.Role != common.RoleCustomer {
		t.Fatalf("role = %s", claims.Role)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := NewManager("secret-a").GenerateToken("user", common.RoleFreelancer)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := NewManager("secret-b").ParseToken(token); err == nil {
		t.Fatal("token signed with another secret should not verify")
	}
}

func TestExtractToken(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer abc.def.ghi", "abc.def.ghi"},
		{"bearer abc.def.ghi", "abc.def.ghi"},
		{"Basic dXNlcjpwYXNz", ""},
		{"Bearer", ""},
	}

	for _, tc := range cases {
		r := httptest.NewRequest("GET", "/", nil)
		if tc.header != "" {
			r.Header.Set("Authorization", tc.header)
		}
		if got := ExtractToken(r); got != tc.want {
			t.Fatalf("header %q: got %q, want %q", tc.header, got, tc.want)
		}
	}
}
