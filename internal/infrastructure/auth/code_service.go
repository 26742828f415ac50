package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"
	"regexp"

	"github.com/firstcreditunion/loan-status-hub-sub000/domain"
)

var codePattern = regexp.MustCompile(`^\d{6}$`)

// CodeServiceImpl implements domain.CodeService with a keyed SHA-256
// digest. The digest is deterministic so stored hashes can be compared
// by equality; the raw code never leaves the verification flow.
type CodeServiceImpl struct {
	secret []byte
}

// NewCodeService creates a code service keyed with the application secret.
func NewCodeService(secret string) domain.CodeService {
	return &CodeServiceImpl{secret: []byte(secret)}
}

// Generate implements domain.CodeService. Codes are sampled uniformly
// from 100000-999999 using crypto/rand.
func (s *CodeServiceImpl) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// Hash implements domain.CodeService.
func (s *CodeServiceImpl) Hash(code string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(code))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify implements domain.CodeService. Fails closed on malformed input.
func (s *CodeServiceImpl) Verify(code, digest string) bool {
	if digest == "" || !codePattern.MatchString(code) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(s.Hash(code)), []byte(digest)) == 1
}
