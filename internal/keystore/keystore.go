// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package keystore checks that resolved signing credentials actually open
// the keystore they point at. The resolver only checks that credentials are
// present; touching the filesystem is this package's job.
//
// Only PKCS#12 keystores are supported, which is what keytool produces by
// default since JDK 9 and what Android Studio generates for upload keys.
package keystore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/pkcs12"

	"github.com/MKhiriev/go-build-keeper/models"
)

var (
	ErrStoreFileNotFound   = errors.New("keystore file not found")
	ErrStoreFileUnreadable = errors.New("keystore file is not a readable PKCS#12 store")
	ErrWrongStorePassword  = errors.New("keystore password is incorrect")
	ErrAliasNotFound       = errors.New("key alias not found in keystore")
)

// Report describes a verified keystore.
type Report struct {
	Path    string
	Aliases []string
	Blocks  int
}

// Verifier opens keystores relative to a base directory. Gradle resolves
// storeFile relative to the app module, so callers pass that directory.
type Verifier struct {
	baseDir string
}

// NewVerifier returns a Verifier resolving relative paths against baseDir.
func NewVerifier(baseDir string) *Verifier {
	return &Verifier{baseDir: baseDir}
}

// VerifySigning checks a resolved signing block.
func (v *Verifier) VerifySigning(signing models.SigningConfig) (Report, error) {
	return v.Verify(signing.StoreFile, signing.StorePassword, signing.KeyAlias)
}

// Verify decodes the store at path with password. When alias is not empty
// it must match the friendlyName of one of the store's bags
// (case-insensitively, as keytool lowercases aliases).
func (v *Verifier) Verify(path, password, alias string) (Report, error) {
	if !filepath.IsAbs(path) && v.baseDir != "" {
		path = filepath.Join(v.baseDir, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Report{}, fmt.Errorf("%w: %s", ErrStoreFileNotFound, path)
		}
		return Report{}, fmt.Errorf("%w: %w", ErrStoreFileUnreadable, err)
	}

	blocks, err := pkcs12.ToPEM(data, password)
	if err != nil {
		if errors.Is(err, pkcs12.ErrIncorrectPassword) {
			return Report{}, fmt.Errorf("%w: %s", ErrWrongStorePassword, path)
		}
		return Report{}, fmt.Errorf("%w: %w", ErrStoreFileUnreadable, err)
	}

	report := Report{Path: path, Blocks: len(blocks)}
	for _, b := range blocks {
		if name, ok := b.Headers["friendlyName"]; ok && name != "" {
			report.Aliases = appendUnique(report.Aliases, name)
		}
	}

	if alias != "" && !containsFold(report.Aliases, alias) {
		return report, fmt.Errorf("%w: %q in %s", ErrAliasNotFound, alias, path)
	}

	return report, nil
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
