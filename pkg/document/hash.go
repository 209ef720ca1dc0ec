package document

import (
	"encoding/hex"

	"github.com/zeebo/xxh3"
)

// fingerprint hashes lines with a separator that cannot occur inside a line.
func fingerprint(lines []string) string {
	h := xxh3.New()
	for _, l := range lines {
		_, _ = h.WriteString(l)
		_, _ = h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
