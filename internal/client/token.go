package client

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-build-keeper/internal/config"
	"github.com/MKhiriev/go-build-keeper/internal/service"
)

var (
	errNoSubject      = errors.New("--subject is required")
	errNoTokenSignKey = errors.New("no token sign key configured (--token-sign-key or APP_TOKEN_SIGN_KEY)")
)

func (a *App) newTokenCommand() *cobra.Command {
	var (
		subject  string
		duration time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the plan server",
		Long: `Token signs a JWT for subject with the server's token sign key. The
subject is recorded as requested_by on plans created with the token.`,
		Example: `  build-keeper token --subject ci-release --token-sign-key "$APP_TOKEN_SIGN_KEY"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if subject == "" {
				return errNoSubject
			}
			if a.cfg.App.TokenSignKey == "" {
				return errNoTokenSignKey
			}

			appCfg := config.App{
				TokenSignKey:  a.cfg.App.TokenSignKey,
				TokenIssuer:   a.cfg.App.TokenIssuer,
				TokenDuration: a.cfg.App.TokenDuration,
			}
			if duration > 0 {
				appCfg.TokenDuration = duration
			}

			token, err := service.NewAuthService(appCfg, a.logger).CreateToken(cmd.Context(), subject)
			if err != nil {
				return err
			}

			a.logger.Debug().Str("subject", subject).Dur("duration", appCfg.TokenDuration).Msg("token issued")
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token.SignedString)
			return err
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "token subject, e.g. a CI job name")
	cmd.Flags().DurationVar(&duration, "duration", 0, "token lifetime (default from config)")

	return cmd
}
