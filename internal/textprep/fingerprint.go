package textprep

import (
	"crypto/md5"
	"encoding/hex"
)

// Fingerprint returns the hex-encoded MD5 digest of the text's UTF-8 bytes.
// It is used only to decide whether a bookmark's content changed since the
// last indexing cycle, never for integrity.
func Fingerprint(text string) string {
	sum := md5.Sum([]byte(text))
	return hex.EncodeToString(sum[:])
}
