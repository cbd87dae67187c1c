package account

import "strings"

// DeriveUsername builds the login name from an owner's display name: the
// lower-cased first letter of every space separated word.
//
//	DeriveUsername("Jonas Schmedtmann") == "js"
func DeriveUsername(owner string) string {
	var b strings.Builder
	for _, word := range strings.Split(strings.ToLower(owner), " ") {
		for _, r := range word {
			b.WriteRune(r)
			break
		}
	}
	return b.String()
}
