package httpmetrics

import "testing"

func TestNormalizePath(t *testing.T) {
	testCases := []struct {
		path string
		want string
	}{
		{"", "/"},
		{"/", "/"},
		{"/api/identity/me", "/api/identity/me"},
		{"/api/users/0b6d4f7e-3c2a-4e19-8f5d-7a1b9c2e4d60", "/api/users/{id}"},
		{"/api/users/42/stamps", "/api/users/{param}/stamps"},
		{"/api/users/abc123", "/api/users/abc123"},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			if got := NormalizePath(tc.path); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
