package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"sync"
)

// Signer computes and checks HMAC-SHA256 signatures of request bodies under
// one key. Hashers are pooled, so a Signer is safe for concurrent use.
//
// A nil *Signer means integrity checks are off: Sign returns "" and Verify
// accepts everything.
type Signer struct {
	pool sync.Pool
}

// NewSigner returns a Signer for key, or nil when key is empty.
func NewSigner(key string) *Signer {
	if key == "" {
		return nil
	}

	s := &Signer{}
	s.pool.New = func() any {
		return hmac.New(sha256.New, []byte(key))
	}
	return s
}

// Sum returns the raw HMAC of data.
func (s *Signer) Sum(data []byte) []byte {
	h := s.pool.Get().(hash.Hash)
	defer s.pool.Put(h)

	h.Reset()
	h.Write(data)
	return h.Sum(nil)
}

// Sign returns the hex HMAC of data.
func (s *Signer) Sign(data []byte) string {
	if s == nil {
		return ""
	}
	return hex.EncodeToString(s.Sum(data))
}

// Verify reports whether signature is the hex HMAC of data. The comparison
// is constant time.
func (s *Signer) Verify(data []byte, signature string) bool {
	if s == nil {
		return true
	}

	got, err := hex.DecodeString(signature)
	if err != nil || len(got) == 0 {
		return false
	}
	return hmac.Equal(got, s.Sum(data))
}

// HashString is a one-off hex HMAC-SHA256 of data under hashKey.
func HashString(data string, hashKey string) string {
	h := hmac.New(sha256.New, []byte(hashKey))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
