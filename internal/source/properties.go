// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package source

import (
	"fmt"
	"io"
	"os"

	"github.com/magiconair/properties"

	"github.com/MKhiriev/go-build-keeper/internal/resolver"
	"github.com/MKhiriev/go-build-keeper/models"
)

// localPropertyKeys maps Flutter's local.properties entries onto settings.
// Other local.properties entries (sdk.dir, flutter.sdk, ...) describe the
// machine, not the build, and are not read.
var localPropertyKeys = map[string]models.SettingKey{
	"flutter.versionCode":       models.KeyVersionCode,
	"flutter.versionName":       models.KeyVersionName,
	"flutter.minSdkVersion":     models.KeyMinSdk,
	"flutter.targetSdkVersion":  models.KeyTargetSdk,
	"flutter.compileSdkVersion": models.KeyCompileSdk,
	"flutter.ndkVersion":        models.KeyNdkVersion,
}

// readProperties decodes a Java properties file: comments, backslash
// escapes, line continuations, and "=", ":" or blank separators. ${...}
// references are kept literally, as Gradle does; nothing is read from the
// process environment.
func readProperties(name string, r io.Reader) (map[string]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrReadingProperties, name, err)
	}

	loader := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	p, err := loader.LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrReadingProperties, name, err)
	}

	return p.Map(), nil
}

// Properties parses a Gradle-style properties file such as key.properties.
// Keys must be setting names (storePassword, keyAlias, ...); anything else
// is rejected as an unknown key.
func Properties(schema *resolver.Schema, name string, r io.Reader) (models.Fragment, error) {
	raw, err := readProperties(name, r)
	if err != nil {
		return models.Fragment{}, err
	}

	return schema.ParseFragment(name, models.SourceProperties, raw)
}

// PropertiesFile opens path and parses it with [Properties]. The fragment is
// named after the path.
func PropertiesFile(schema *resolver.Schema, path string) (models.Fragment, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.Fragment{}, fmt.Errorf("%w %q: %w", ErrReadingProperties, path, err)
	}
	defer f.Close()

	return Properties(schema, path, f)
}

// LocalProperties parses Flutter's local.properties and keeps only the
// flutter.* build entries.
func LocalProperties(schema *resolver.Schema, name string, r io.Reader) (models.Fragment, error) {
	raw, err := readProperties(name, r)
	if err != nil {
		return models.Fragment{}, err
	}

	mapped := make(map[string]string, len(localPropertyKeys))
	for from, to := range localPropertyKeys {
		if v, ok := raw[from]; ok {
			mapped[string(to)] = v
		}
	}

	return schema.ParseFragment(name, models.SourceProperties, mapped)
}
