package core

import "strings"

// EmailMatchesName implements the password-recovery identity heuristic.
//
// The full name is split on whitespace; parts longer than 2 characters
// are lower-cased and the email matches when any of them appears as a
// substring of the lower-cased email. There is no token and no expiry;
// this reproduces the legacy behavior and is intentionally not hardened.
func EmailMatchesName(fullName, email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false
	}
	for _, part := range strings.Fields(fullName) {
		if len([]rune(part)) <= 2 {
			continue
		}
		if strings.Contains(email, strings.ToLower(part)) {
			return true
		}
	}
	return false
}
