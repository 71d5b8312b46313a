package utils

import (
	"crypto/rand"
	"math/big"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
)

const (
	ShareCodeLength   = 6
	shareCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var shareCodePattern = regexp.MustCompile(`^[A-Z0-9]{6}$`)

// NewShareCode returns a random six character join code.
func NewShareCode() (string, error) {
	max := big.NewInt(int64(len(shareCodeAlphabet)))
	var b strings.Builder
	b.Grow(ShareCodeLength)
	for i := 0; i < ShareCodeLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", eris.Wrap(err, "failed to generate share code")
		}
		b.WriteByte(shareCodeAlphabet[n.Int64()])
	}
	return b.String(), nil
}

// NormalizeShareCode upper-cases code and reports whether it is a valid
// share code. Codes are accepted case-insensitively.
func NormalizeShareCode(code string) (string, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	return code, shareCodePattern.MatchString(code)
}
