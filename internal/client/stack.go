package client

import (
	"context"
	"errors"
	"fmt"
	"os/user"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-build-keeper/internal/config"
	"github.com/MKhiriev/go-build-keeper/internal/resolver"
	"github.com/MKhiriev/go-build-keeper/internal/service"
	"github.com/MKhiriev/go-build-keeper/internal/source"
	"github.com/MKhiriev/go-build-keeper/internal/store"
	"github.com/MKhiriev/go-build-keeper/internal/utils"
	"github.com/MKhiriev/go-build-keeper/models"
)

// stackFlags select the configuration layers to merge.
type stackFlags struct {
	variant         string
	descriptor      string
	properties      string
	localProperties string
	overrides       []string
	noEnv           bool
}

func (f *stackFlags) register(cmd *cobra.Command, defaultVariant string) {
	fs := cmd.Flags()
	fs.StringVarP(&f.variant, "variant", "v", defaultVariant, "build variant to resolve")
	fs.StringVarP(&f.descriptor, "descriptor", "d", "", "build descriptor (YAML or JSON)")
	fs.StringVarP(&f.properties, "properties", "p", "", "key.properties file with signing credentials")
	fs.StringVar(&f.localProperties, "local-properties", "", "local.properties file with flutter.* entries")
	fs.StringArrayVar(&f.overrides, "set", nil, "literal override key=value (repeatable)")
	fs.BoolVar(&f.noEnv, "no-env", false, "ignore the process environment")
}

// stack loads the descriptor, if any, and describes the layers to read.
func (f *stackFlags) stack(environ map[string]string) (source.Stack, error) {
	s := source.Stack{
		LocalProperties: f.localProperties,
		KeyProperties:   f.properties,
		Overrides:       f.overrides,
	}
	if !f.noEnv {
		s.Environ = environ
	}
	if f.descriptor != "" {
		d, err := source.LoadDescriptorFile(f.descriptor)
		if err != nil {
			return source.Stack{}, err
		}
		s.Descriptor = d
	}
	return s, nil
}

// localResolution is the outcome of resolving on this machine.
type localResolution struct {
	config      models.ResolvedConfig
	planID      string
	fingerprint string
}

// resolveLocal reads every layer and resolves them. With record set the
// redacted plan is written to the client's plan database.
func (a *App) resolveLocal(ctx context.Context, f *stackFlags, record bool) (res localResolution, err error) {
	if record && a.cfg.App.FingerprintSalt == "" {
		return res, fmt.Errorf("%w: --record needs --fingerprint-salt", config.ErrInvalidAppConfigs)
	}

	stack, err := f.stack(a.environ())
	if err != nil {
		return res, err
	}
	variant, err := stack.Variant(f.variant)
	if err != nil {
		return res, err
	}

	r := resolver.New(nil)
	fragments, err := stack.Fragments(r.Schema(), variant.Name)
	if err != nil {
		return res, err
	}

	var plans store.PlanRepository
	if record {
		storages, err := store.NewStorages(ctx, config.DB{
			Driver: a.cfg.Storage.DB.Driver,
			DSN:    a.cfg.Storage.DB.DSN,
		}, a.logger)
		if err != nil {
			return res, err
		}
		defer func() {
			err = errors.Join(err, storages.Close())
		}()
		plans = storages.PlanRepository
	}

	ctx = utils.WithCaller(a.logger.WithContext(ctx), localCaller())
	svc := service.NewResolveService(r, plans, a.cfg.App.FingerprintSalt, a.logger)

	res.config, res.planID, err = svc.ResolveFragments(ctx, variant, fragments, record)
	if err != nil {
		return res, err
	}
	res.fingerprint = utils.CredentialFingerprint(res.config.Signing(), a.cfg.App.FingerprintSalt)

	a.logger.Debug().
		Str("variant", variant.Name).
		Int("fragments", len(fragments)).
		Str("plan_id", res.planID).
		Msg("configuration resolved")

	return res, nil
}

// fragmentInputs converts typed fragments to their wire form. Unset values
// are dropped.
func fragmentInputs(fragments []models.Fragment) []models.FragmentInput {
	inputs := make([]models.FragmentInput, 0, len(fragments))
	for _, f := range fragments {
		values := make(map[string]any, f.Len())
		for k, v := range f.Values() {
			if v.IsPresent() {
				values[string(k)] = v.Interface()
			}
		}
		inputs = append(inputs, models.FragmentInput{Name: f.Name(), Values: values})
	}
	return inputs
}

func localCaller() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return fmt.Sprintf("local:%s", u.Username)
	}
	return "local"
}
