// Package alias derives the public anonymous identities shown next to posts,
// comments and sessions. Resolution is pure and deterministic: anyone holding
// a seed can compute the display name, but no seed reveals the account behind
// it. Authorization never goes through aliases.
package alias

import (
	"fmt"
	"strings"
	"unicode/utf16"

	"github.com/google/uuid"
)

// Resolve maps any seed to a stable display name of the form "Anonymous #NNN"
// with NNN in [100,999].
func Resolve(seed string) string {
	n := hash(seed)%900 + 100
	return fmt.Sprintf("Anonymous #%d", n)
}

// AccountSeed builds the write-once alias seed assigned at registration.
func AccountSeed(accountID, email string) string {
	return accountID + "|" + email
}

// ChildSeed derives a fresh seed for an entity created under a parent seed
// (a post under an account, a comment under an account). The random token is
// the unlinkability mechanism: two children of the same parent never share a
// seed, so their aliases are unrelated.
func ChildSeed(kind, parentSeed string) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return parentSeed + "|" + kind + ":" + token
}

// hash is a 32-bit wrapping polynomial hash over UTF-16 code units, reduced to
// a non-negative int. Equivalent seeds always hash equal across processes.
func hash(s string) int {
	var h int32
	for _, u := range utf16.Encode([]rune(s)) {
		h = (h << 5) - h + int32(u)
	}
	n := int64(h)
	if n < 0 {
		n = -n
	}
	return int(n)
}
