package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/firstcreditunion/loan-status-hub-sub000/domain"
)

// TokenServiceImpl issues dashboard access tokens of the form
// hex(sha256(email:loan:ts)) + "." + ts. The token is embedded in
// outbound links as an opaque value; nothing gates on it today.
type TokenServiceImpl struct{}

func NewTokenService() domain.TokenService {
	return &TokenServiceImpl{}
}

// Issue implements domain.TokenService.
func (s *TokenServiceImpl) Issue(email string, loanNumber int64, now time.Time) string {
	ts := now.Unix()
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s:%d:%d", email, loanNumber, ts)))
	return hex.EncodeToString(sum[:]) + "." + strconv.FormatInt(ts, 10)
}

// Check recomputes the digest for the token's embedded timestamp.
func (s *TokenServiceImpl) Check(email string, loanNumber int64, token string) bool {
	digest, tsPart, found := strings.Cut(token, ".")
	if !found || digest == "" {
		return false
	}
	ts, err := strconv.ParseInt(tsPart, 10, 64)
	if err != nil {
		return false
	}
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s:%d:%d", email, loanNumber, ts)))
	expected := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(expected), []byte(digest)) == 1
}
