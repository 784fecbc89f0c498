package keystore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-build-keeper/models"
)

func TestVerify_MissingFile(t *testing.T) {
	_, err := NewVerifier(t.TempDir()).Verify("upload.p12", "secret", "upload")
	assert.ErrorIs(t, err, ErrStoreFileNotFound)
}

func TestVerify_NotPKCS12(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "upload.jks"), []byte("not a keystore"), 0o600))

	_, err := NewVerifier(dir).Verify("upload.jks", "secret", "")
	assert.ErrorIs(t, err, ErrStoreFileUnreadable)
}

func TestVerify_AbsolutePathIgnoresBaseDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.p12")

	_, err := NewVerifier("/somewhere/else").Verify(path, "secret", "")
	require.ErrorIs(t, err, ErrStoreFileNotFound)
	assert.Contains(t, err.Error(), path)
}

func TestVerifySigning_UsesStoreFile(t *testing.T) {
	_, err := NewVerifier(t.TempDir()).VerifySigning(models.SigningConfig{
		KeyAlias:      "upload",
		KeyPassword:   "k",
		StoreFile:     "missing.p12",
		StorePassword: "s",
	})
	assert.ErrorIs(t, err, ErrStoreFileNotFound)
}

func TestContainsFold(t *testing.T) {
	assert.True(t, containsFold([]string{"Upload"}, "upload"))
	assert.False(t, containsFold([]string{"upload"}, "release"))
	assert.Equal(t, []string{"a"}, appendUnique([]string{"a"}, "a"))
}
