package content

import (
	"crypto/md5"
	"encoding/hex"
)

// Digest returns the lowercase hex MD5 of data.
func Digest(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}
