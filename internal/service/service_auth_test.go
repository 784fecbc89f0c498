package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-build-keeper/internal/config"
	"github.com/MKhiriev/go-build-keeper/internal/logger"
)

func testAuthConfig() config.App {
	return config.App{
		TokenSignKey:  "sign-key",
		TokenIssuer:   "go-build-keeper",
		TokenDuration: time.Hour,
	}
}

func TestAuthService_CreateAndParse(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(testAuthConfig(), logger.Nop())

	token, err := svc.CreateToken(ctx, "ci-release")
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := svc.ParseToken(ctx, token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, "ci-release", parsed.Caller())
}

func TestAuthService_CreateToken_EmptySubject(t *testing.T) {
	_, err := NewAuthService(testAuthConfig(), logger.Nop()).CreateToken(context.Background(), "")
	assert.ErrorIs(t, err, ErrTokenCreationFailed)
}

func TestAuthService_ParseToken_Invalid(t *testing.T) {
	ctx := context.Background()
	issuer := NewAuthService(testAuthConfig(), logger.Nop())

	other := testAuthConfig()
	other.TokenSignKey = "another-key"
	verifier := NewAuthService(other, logger.Nop())

	token, err := issuer.CreateToken(ctx, "dev")
	require.NoError(t, err)

	_, err = verifier.ParseToken(ctx, token.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)

	_, err = issuer.ParseToken(ctx, "garbage")
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}
