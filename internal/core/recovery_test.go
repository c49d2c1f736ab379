package core

import "testing"

func TestEmailMatchesName(t *testing.T) {
	cases := []struct {
		name  string
		email string
		want  bool
	}{
		{"Ana Maria Souza", "ana.souza@example.com", true},
		{"Ana Maria Souza", "MARIA@example.com", true},
		{"Ana Maria Souza", "xx@example.com", false},
		// Parts of 2 characters or fewer never match
		{"Jo Li", "jo@example.com", false},
		{"Ana Maria Souza", "", false},
		{"", "ana@example.com", false},
		{"José da Silva", "jose.silva@example.com", true}, // "silva" matches even though "josé" cannot
		{"José da Silva", "da@example.com", false},
	}
	for _, tc := range cases {
		if got := EmailMatchesName(tc.name, tc.email); got != tc.want {
			t.Fatalf("name %q email %q expected %v, got %v", tc.name, tc.email, tc.want, got)
		}
	}
}
