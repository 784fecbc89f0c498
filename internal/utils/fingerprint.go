package utils

import (
	"encoding/hex"
	"strings"

	"github.com/MKhiriev/go-build-keeper/models"
	"golang.org/x/crypto/argon2"
)

// argon2id parameters for credential fingerprints (OWASP minimum: 19 MiB,
// two passes, one lane).
const (
	fingerprintTime    = 2
	fingerprintMemory  = 19 * 1024
	fingerprintThreads = 1
	fingerprintKeyLen  = 32
)

// CredentialFingerprint derives a stable, non-reversible fingerprint of the
// signing credentials so that two plans can be compared ("signed with the
// same key?") without storing any secret.
//
// The four signing fields are joined with NUL separators and hashed with
// argon2id under salt. It returns "" when no signing field is set.
func CredentialFingerprint(signing models.SigningConfig, salt string) string {
	if signing == (models.SigningConfig{}) {
		return ""
	}

	material := strings.Join([]string{
		signing.KeyAlias,
		signing.KeyPassword,
		signing.StoreFile,
		signing.StorePassword,
	}, "\x00")

	sum := argon2.IDKey([]byte(material), []byte(salt),
		fingerprintTime, fingerprintMemory, fingerprintThreads, fingerprintKeyLen)

	return hex.EncodeToString(sum)
}
