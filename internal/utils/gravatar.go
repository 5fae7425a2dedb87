package utils

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

// GravatarURL derives the deterministic placeholder avatar URL for an email
// address. Gravatar addresses images by the MD5 hex digest of the trimmed,
// lowercased email; MD5 is used here as an identifier, not for security.
func GravatarURL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	digest := md5.Sum([]byte(normalized))

	return fmt.Sprintf("http://www.gravatar.com/avatar/%s", hex.EncodeToString(digest[:]))
}
