package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.layers)
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestBuild_MergesMultipleConfigs(t *testing.T) {
	b := newConfigBuilder().
		withConfig(&StructuredConfig{App: App{Version: "1.0.0"}}).
		withConfig(&StructuredConfig{App: App{TokenIssuer: "issuer"}})

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", cfg.App.Version)
	assert.Equal(t, "issuer", cfg.App.TokenIssuer)
}

// TestBuild_LaterNonZeroWins verifies that a later layer overrides an
// earlier one, while a zero field in the later layer keeps the earlier value.
func TestBuild_LaterNonZeroWins(t *testing.T) {
	b := newConfigBuilder().
		withConfig(&StructuredConfig{Server: Server{HTTPAddress: ":8080", RequestTimeout: time.Second}}).
		withConfig(&StructuredConfig{Server: Server{HTTPAddress: ":9090"}})

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.HTTPAddress)
	assert.Equal(t, time.Second, cfg.Server.RequestTimeout)
}

// ── withDefaults ──────────────────────────────────────────────────────────────

func TestWithDefaults(t *testing.T) {
	cfg, err := newConfigBuilder().withDefaults().build()
	require.NoError(t, err)

	assert.Equal(t, DefaultTokenIssuer, cfg.App.TokenIssuer)
	assert.Equal(t, DefaultTokenDuration, cfg.App.TokenDuration)
	assert.Equal(t, DefaultDBDriver, cfg.Storage.DB.Driver)
	assert.Equal(t, DefaultRequestTimeout, cfg.Server.RequestTimeout)
	assert.Equal(t, DefaultRetentionInterval, cfg.Workers.RetentionInterval)
}

// ── withEnv ───────────────────────────────────────────────────────────────────

func TestWithEnv_OverridesDefaults(t *testing.T) {
	t.Setenv("STORAGE_DB_DRIVER", "pgx")
	t.Setenv("APP_TOKEN_DURATION", "2h")

	cfg, err := newConfigBuilder().withDefaults().withEnv().build()
	require.NoError(t, err)
	assert.Equal(t, "pgx", cfg.Storage.DB.Driver)
	assert.Equal(t, 2*time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, DefaultDBDSN, cfg.Storage.DB.DSN)
}

func TestWithEnv_InvalidDuration(t *testing.T) {
	t.Setenv("APP_TOKEN_DURATION", "not-a-duration")

	b := newConfigBuilder().withEnv()
	assert.Error(t, b.err)
	assert.Empty(t, b.layers)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

func TestWithFlags_OverridesEnv(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", "localhost:1111")

	cfg, err := newConfigBuilder().withEnv().withFlags([]string{"-a", "localhost:2222"}).build()
	require.NoError(t, err)
	assert.Equal(t, "localhost:2222", cfg.Server.HTTPAddress)
}

func TestWithFlags_UnknownFlag(t *testing.T) {
	b := newConfigBuilder().withFlags([]string{"-nope"})
	assert.Error(t, b.err)
	assert.Empty(t, b.layers)
}

func TestWithConfig_NilIsSkipped(t *testing.T) {
	b := newConfigBuilder().withConfig(nil)
	assert.NoError(t, b.err)
	assert.Empty(t, b.layers)
}

func TestBuild_JoinsSourceErrors(t *testing.T) {
	t.Setenv("APP_TOKEN_DURATION", "not-a-duration")

	_, err := newConfigBuilder().withEnv().withFlags([]string{"-nope"}).build()

	require.Error(t, err)
	assert.ErrorContains(t, err, "error getting env configs")
	assert.ErrorContains(t, err, "nope")
}

// ── withJSON ──────────────────────────────────────────────────────────────────

func TestWithJSON_NoPath(t *testing.T) {
	b := newConfigBuilder().withDefaults().withJSON()
	assert.NoError(t, b.err)
	require.Len(t, b.layers, 1)
	assert.Equal(t, "default", b.layers[0].name)
}

func TestWithJSON_PathFromFlags(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"app":     map[string]any{"token_sign_key": "from-json", "token_duration": "90m"},
		"storage": map[string]any{"db": map[string]any{"driver": "pgx", "dsn": "postgres://x"}},
	})

	cfg, err := newConfigBuilder().withDefaults().withFlags([]string{"-c", path}).withJSON().build()
	require.NoError(t, err)
	assert.Equal(t, "from-json", cfg.App.TokenSignKey)
	assert.Equal(t, 90*time.Minute, cfg.App.TokenDuration)
	assert.Equal(t, "pgx", cfg.Storage.DB.Driver)
	assert.Equal(t, "postgres://x", cfg.Storage.DB.DSN)
}

func TestWithJSON_MissingFile(t *testing.T) {
	b := newConfigBuilder().withConfig(&StructuredConfig{JSONFilePath: "/does/not/exist.json"}).withJSON()
	assert.Error(t, b.err)
}

// ── GetServerConfig / GetClientConfig ─────────────────────────────────────────

func TestGetServerConfig_Valid(t *testing.T) {
	cfg, err := GetServerConfig([]string{"-a", "localhost:8080", "-token-sign-key", "k", "-fingerprint-salt", "s"})
	require.NoError(t, err)
	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, "k", cfg.App.TokenSignKey)
	assert.Equal(t, "s", cfg.App.FingerprintSalt)
}

func TestGetServerConfig_MissingSignKey(t *testing.T) {
	_, err := GetServerConfig([]string{"-a", "localhost:8080", "-fingerprint-salt", "s"})
	assert.ErrorIs(t, err, ErrInvalidAppConfigs)
}

func TestGetServerConfig_MissingFingerprintSalt(t *testing.T) {
	_, err := GetServerConfig([]string{"-a", "localhost:8080", "-token-sign-key", "k"})
	assert.ErrorIs(t, err, ErrInvalidAppConfigs)
	assert.ErrorContains(t, err, "fingerprint salt")
}

func TestGetClientConfig_CLILayerWins(t *testing.T) {
	t.Setenv("ADAPTER_ADDRESS", "http://env:8080")

	cfg, err := GetClientConfig("", &StructuredConfig{Adapter: Adapter{HTTPAddress: "http://cli:8080"}})
	require.NoError(t, err)
	assert.Equal(t, "http://cli:8080", cfg.Adapter.HTTPAddress)
	assert.Equal(t, DefaultRequestTimeout, cfg.Adapter.RequestTimeout)
}

func TestGetClientConfig_FromJSON(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"adapter": map[string]any{"http_address": "http://json:1", "token": "tok"},
	})

	cfg, err := GetClientConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "http://json:1", cfg.Adapter.HTTPAddress)
	assert.Equal(t, "tok", cfg.Adapter.Token)
}
