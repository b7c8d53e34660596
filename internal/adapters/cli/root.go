// Package cli wires the cobra command tree to the app service and the shell.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"hotels/internal/adapters/observability"
	"hotels/internal/app"
	"hotels/internal/domain"
	"hotels/internal/shared"
	"hotels/internal/storage"
)

// runtime is filled in by the root pre-run hook and shared by subcommands.
type runtime struct {
	v   *viper.Viper
	cfg shared.Config
	log zerolog.Logger
	reg *prometheus.Registry
}

func NewRootCommand(v *viper.Viper) *cobra.Command {
	rt := &runtime{v: v}
	root := &cobra.Command{
		Use:               "hotels",
		Short:             "Keep track of a hotel's rooms and bookings",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: rt.setup,
	}
	root.PersistentFlags().String("file", "hotel.json",
		"snapshot location: a file path, redis://host:port/db or mysql://<dsn>")
	_ = v.BindPFlag("file", root.PersistentFlags().Lookup("file"))
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return &usageError{err: err} })

	root.AddCommand(newHotelCommand(rt), newBookCommand(rt), newShellCommand(rt))
	rt.flushMetricsAfter(root)
	return root
}

// Execute runs root and logs a failure through the configured logger. It
// returns the process exit status.
func Execute(ctx context.Context, root *cobra.Command) int {
	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	code := ExitCode(err)
	log.Error().Err(err).Int("exit_code", code).Msg("command failed")
	return code
}

func (rt *runtime) setup(cmd *cobra.Command, _ []string) error {
	rt.cfg = shared.Load(rt.v)
	rt.log = observability.NewLogger(rt.cfg.AppEnv, rt.cfg.LogLevel, rt.cfg.LogFile)
	log.Logger = rt.log
	rt.reg = observability.InitRegistry()
	rt.log.Debug().Str("command", cmd.CommandPath()).Str("file", rt.cfg.File).Msg("starting")
	return nil
}

// flushMetricsAfter wraps every runnable command under c so the metrics
// textfile is written when it returns, failed runs included. cobra skips
// post-run hooks after an error.
func (rt *runtime) flushMetricsAfter(c *cobra.Command) {
	for _, sub := range c.Commands() {
		rt.flushMetricsAfter(sub)
	}
	if c.RunE == nil {
		return
	}
	run := c.RunE
	c.RunE = func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			if werr := rt.writeMetrics(); werr != nil && err == nil {
				err = werr
			}
		}()
		return run(cmd, args)
	}
}

func (rt *runtime) writeMetrics() error {
	if rt.cfg.MetricsFile == "" {
		return nil
	}
	if err := observability.WriteTextfile(rt.cfg.MetricsFile, rt.reg); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}

func (rt *runtime) open(ctx context.Context, location string) (domain.HotelStore, error) {
	return storage.Open(ctx, location, rt.cfg.SnapshotKey)
}

// withService opens the configured store for the duration of fn.
func (rt *runtime) withService(ctx context.Context, fn func(*app.Service) error) error {
	st, err := rt.open(ctx, rt.cfg.File)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(app.NewService(st, rt.log))
}

type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return &usageError{err: err}
		}
		return nil
	}
}

// ExitCode maps an error from Execute to a process exit status:
// 2 for bad input, 1 for anything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ue *usageError
	if errors.As(err, &ue) || errors.Is(err, app.ErrInvalidInput) {
		return 2
	}
	return 1
}
