// Package storage serves uploaded resume documents. Downloads go through
// time-limited signed URLs so a stored file is never exposed by bare path.
package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// SignedURLTTL matches the 60-second validity of the download links the
// resume screen hands out.
const SignedURLTTL = 60 * time.Second

var (
	ErrExpiredURL   = errors.New("signed url expired")
	ErrBadSignature = errors.New("signed url signature mismatch")
)

// Signer issues and verifies HMAC-SHA256 signed download URLs.
type Signer struct {
	secret []byte
}

func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

// SignedURL returns a relative download URL for path, valid for ttl.
func (s *Signer) SignedURL(path string, ttl time.Duration) string {
	expires := time.Now().Add(ttl).Unix()
	sig := s.signature(path, expires)
	return fmt.Sprintf("/files/resumes/%s?expires=%d&signature=%s",
		url.PathEscape(path), expires, sig)
}

// Verify checks the signature and expiry for a redeemed URL.
func (s *Signer) Verify(path, expiresRaw, signature string) error {
	expires, err := strconv.ParseInt(expiresRaw, 10, 64)
	if err != nil {
		return ErrBadSignature
	}
	expected := s.signature(path, expires)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrBadSignature
	}
	if time.Now().Unix() > expires {
		return ErrExpiredURL
	}
	return nil
}

func (s *Signer) signature(path string, expires int64) string {
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%s:%d", path, expires)
	return hex.EncodeToString(mac.Sum(nil))
}
