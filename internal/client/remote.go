package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-build-keeper/internal/adapter"
	"github.com/MKhiriev/go-build-keeper/internal/resolver"
	"github.com/MKhiriev/go-build-keeper/models"
)

func (a *App) newRemoteCommand() *cobra.Command {
	var useGRPC bool

	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Talk to a build-keeper plan server",
		Long: `Remote commands send work to a plan server configured with --server
(HTTP) or --grpc-server together with --grpc. Requests carry the bearer token
from --token or ADAPTER_TOKEN.`,
	}
	cmd.PersistentFlags().BoolVar(&useGRPC, "grpc", false, "use the gRPC transport (resolve and plan only)")

	connect := func() (adapter.ServerAdapter, error) {
		return a.newAdapter(a.cfg, useGRPC, a.logger)
	}

	cmd.AddCommand(a.newRemoteResolveCommand(connect))
	cmd.AddCommand(a.newRemotePlansCommand(connect))
	cmd.AddCommand(a.newRemotePlanCommand(connect))
	cmd.AddCommand(a.newRemoteVersionCommand(connect))

	return cmd
}

type connectFunc func() (adapter.ServerAdapter, error)

// withServer runs fn with a connected adapter and closes it afterwards.
func withServer(connect connectFunc, fn func(sa adapter.ServerAdapter) error) (err error) {
	sa, err := connect()
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, sa.Close())
	}()
	return fn(sa)
}

func (a *App) newRemoteResolveCommand(connect connectFunc) *cobra.Command {
	var (
		sf     stackFlags
		format string
		reveal bool
		record bool
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Read the layers locally and let the server resolve them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, formatJSON, formatYAML, formatEnv); err != nil {
				return err
			}

			req, err := a.remoteRequest(&sf)
			if err != nil {
				return err
			}
			req.Record = record
			req.Reveal = reveal

			return withServer(connect, func(sa adapter.ServerAdapter) error {
				result, err := sa.Resolve(cmd.Context(), req)
				if err != nil {
					return err
				}
				return writeResult(cmd.OutOrStdout(), format, result)
			})
		},
	}

	sf.register(cmd, models.VariantDebug)
	cmd.Flags().StringVarP(&format, "format", "o", formatJSON, "output format: json, yaml, or env")
	cmd.Flags().BoolVar(&reveal, "reveal", false, "ask the server to return secret values")
	cmd.Flags().BoolVar(&record, "record", false, "record the resolution as a build plan on the server")

	return cmd
}

// remoteRequest reads the layers into a resolve request. A descriptor's
// variant policy travels with the request since the server only knows the
// built-in variants.
func (a *App) remoteRequest(sf *stackFlags) (models.ResolveRequest, error) {
	stack, err := sf.stack(a.environ())
	if err != nil {
		return models.ResolveRequest{}, err
	}
	variant, err := stack.Variant(sf.variant)
	if err != nil {
		return models.ResolveRequest{}, err
	}
	fragments, err := stack.Fragments(resolver.DefaultSchema(), variant.Name)
	if err != nil {
		return models.ResolveRequest{}, err
	}

	req := models.ResolveRequest{
		Variant:   variant.Name,
		Fragments: fragmentInputs(fragments),
	}
	if stack.Descriptor != nil {
		req.VariantSpec = &variant
	}
	return req, nil
}

func (a *App) newRemotePlansCommand(connect connectFunc) *cobra.Command {
	var (
		variant string
		limit   uint64
		format  string
	)

	cmd := &cobra.Command{
		Use:   "plans",
		Short: "List recorded build plans, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, formatTable, formatJSON, formatYAML); err != nil {
				return err
			}

			return withServer(connect, func(sa adapter.ServerAdapter) error {
				plans, err := sa.ListPlans(cmd.Context(), models.PlanFilter{Variant: variant, Limit: limit})
				if err != nil {
					return err
				}
				if format != formatTable {
					return writeDocument(cmd.OutOrStdout(), format, plans)
				}

				rows := make([][]string, 0, len(plans))
				for _, p := range plans {
					rows = append(rows, []string{
						p.ID,
						p.Variant,
						p.CreatedAt.Local().Format(time.DateTime),
						p.RequestedBy,
						shortFingerprint(p.Fingerprint),
					})
				}
				return writeTable(cmd.OutOrStdout(), []string{"ID", "Variant", "Created", "Requested by", "Fingerprint"}, rows)
			})
		},
	}

	cmd.Flags().StringVarP(&variant, "variant", "v", "", "only plans for this variant")
	cmd.Flags().Uint64Var(&limit, "limit", 0, "maximum number of plans (server default when 0)")
	cmd.Flags().StringVarP(&format, "format", "o", formatTable, "output format: table, json, or yaml")

	return cmd
}

func (a *App) newRemotePlanCommand(connect connectFunc) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "plan <id>",
		Short: "Show one recorded build plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, formatJSON, formatYAML); err != nil {
				return err
			}

			return withServer(connect, func(sa adapter.ServerAdapter) error {
				plan, err := sa.GetPlan(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return writeDocument(cmd.OutOrStdout(), format, plan)
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "o", formatJSON, "output format: json or yaml")
	return cmd
}

func (a *App) newRemoteVersionCommand(connect connectFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the plan server's version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServer(connect, func(sa adapter.ServerAdapter) error {
				version, err := serverVersion(cmd.Context(), sa)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), version)
				return err
			})
		},
	}
}

func serverVersion(ctx context.Context, sa adapter.ServerAdapter) (string, error) {
	version, err := sa.Version(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get server version: %w", err)
	}
	return version, nil
}

func shortFingerprint(fp string) string {
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}
