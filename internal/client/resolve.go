package client

import (
	"errors"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-build-keeper/internal/keystore"
	"github.com/MKhiriev/go-build-keeper/models"
)

var errIncompleteSigning = errors.New("signing credentials are incomplete, nothing to verify")

func (a *App) newResolveCommand() *cobra.Command {
	var (
		sf          stackFlags
		format      string
		reveal      bool
		verify      bool
		record      bool
		keystoreDir string
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Merge configuration layers and print the validated result",
		Long: `Resolve reads the descriptor, local.properties, key.properties, the
environment, and --set overrides (lowest to highest precedence), merges them,
and validates the result against the variant's policy.

All problems are reported at once: every unknown key and every missing
setting is listed in the error.`,
		Example: `  build-keeper resolve --variant release --descriptor build.yaml --properties android/key.properties
  build-keeper resolve -v debug --set versionName=1.2.3 --format env > build.env`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, formatJSON, formatYAML, formatEnv); err != nil {
				return err
			}

			res, err := a.resolveLocal(cmd.Context(), &sf, record)
			if err != nil {
				return err
			}

			if verify {
				dir := keystoreDir
				if dir == "" {
					dir = defaultKeystoreDir(sf.properties)
				}
				if err = a.verifyKeystore(res.config.Signing(), dir); err != nil {
					return err
				}
			}

			return writeResult(cmd.OutOrStdout(), format, models.ResolveResult{
				PlanID:      res.planID,
				Variant:     res.config.Variant().Name,
				Settings:    res.config.Plain(reveal),
				Origins:     res.config.Origins(),
				Fingerprint: res.fingerprint,
			})
		},
	}

	sf.register(cmd, models.VariantDebug)
	cmd.Flags().StringVarP(&format, "format", "o", formatJSON, "output format: json, yaml, or env")
	cmd.Flags().BoolVar(&reveal, "reveal", false, "print secret values instead of redacting them")
	cmd.Flags().BoolVar(&verify, "verify-keystore", false, "open the keystore and check the alias and password")
	cmd.Flags().StringVar(&keystoreDir, "keystore-dir", "", "directory storeFile is relative to (default: the key.properties directory)")
	cmd.Flags().BoolVar(&record, "record", false, "record the resolution in the local plan database")

	return cmd
}

// verifyKeystore opens the store named by signing and checks its password
// and alias.
func (a *App) verifyKeystore(signing models.SigningConfig, baseDir string) error {
	if !signing.IsComplete() {
		return errIncompleteSigning
	}

	report, err := keystore.NewVerifier(baseDir).VerifySigning(signing)
	if err != nil {
		return err
	}

	a.logger.Info().
		Str("store_file", report.Path).
		Strs("aliases", report.Aliases).
		Int("blocks", report.Blocks).
		Msg("keystore verified")
	return nil
}

func defaultKeystoreDir(propertiesPath string) string {
	if propertiesPath == "" {
		return "."
	}
	return filepath.Dir(propertiesPath)
}
