// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package source

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"

	"github.com/MKhiriev/go-build-keeper/internal/resolver"
	"github.com/MKhiriev/go-build-keeper/models"
)

// EnvFragmentName is the provenance label of the environment fragment.
const EnvFragmentName = "env"

// buildEnv maps environment variables onto build settings.
//
// The CM_* variables are set by CI signing integrations and win over the
// generic names when both are present.
type buildEnv struct {
	KeyAlias      string `env:"KEY_ALIAS"`
	KeyPassword   string `env:"KEY_PASSWORD"`
	StorePassword string `env:"STORE_PASSWORD"`
	StoreFile     string `env:"STORE_FILE"`

	CMKeyAlias         string `env:"CM_KEY_ALIAS"`
	CMKeyPassword      string `env:"CM_KEY_PASSWORD"`
	CMKeystorePassword string `env:"CM_KEYSTORE_PASSWORD"`
	CMKeystorePath     string `env:"CM_KEYSTORE_PATH"`

	ApplicationID string `env:"APPLICATION_ID"`
	VersionCode   string `env:"VERSION_CODE"`
	VersionName   string `env:"VERSION_NAME"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Env builds the environment fragment from environ. It never reads the
// process environment itself; see [FromProcessEnv].
func Env(schema *resolver.Schema, environ map[string]string) (models.Fragment, error) {
	var e buildEnv
	if err := env.ParseWithOptions(&e, env.Options{Environment: environ}); err != nil {
		return models.Fragment{}, fmt.Errorf("%w: %w", ErrReadingEnv, err)
	}

	raw := map[string]string{
		string(models.KeyKeyAlias):      firstNonEmpty(e.CMKeyAlias, e.KeyAlias),
		string(models.KeyKeyPassword):   firstNonEmpty(e.CMKeyPassword, e.KeyPassword),
		string(models.KeyStorePassword): firstNonEmpty(e.CMKeystorePassword, e.StorePassword),
		string(models.KeyStoreFile):     firstNonEmpty(e.CMKeystorePath, e.StoreFile),
		string(models.KeyApplicationID): e.ApplicationID,
		string(models.KeyVersionCode):   e.VersionCode,
		string(models.KeyVersionName):   e.VersionName,
	}

	return schema.ParseFragment(EnvFragmentName, models.SourceEnv, raw)
}

// FromProcessEnv reads the current process environment once and builds the
// environment fragment from it.
func FromProcessEnv(schema *resolver.Schema) (models.Fragment, error) {
	return Env(schema, env.ToMap(os.Environ()))
}
