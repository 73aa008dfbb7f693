package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/nanlint/jvalidate/compiler"
	"github.com/nanlint/jvalidate/i18n"

	jvalidate "github.com/nanlint/jvalidate"
)

// batchConcurrency bounds how many instances are validated at once:
// independent instances against the same compiled schema share no mutable
// state (each gets its own Evaluator tree), so they can run in parallel.
const batchConcurrency = 8

func newBatchCmd(logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <schema> <instance>...",
		Short: "Validate many JSON instances concurrently against one schema",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			opts, err := resolveOptions(cmd, cfg)
			if err != nil {
				return err
			}

			schemaData, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading schema: %w", err)
			}
			comp := compiler.New(compiler.Options{StrictFormat: opts.strictFormat})
			s, err := comp.CompileBytes(schemaData)
			if err != nil {
				return fmt.Errorf("compiling schema: %w", err)
			}

			translator := i18n.English
			if opts.locale != "" {
				translator = i18n.Resolve(opts.locale)
			}

			instancePaths := args[1:]
			results := make([]jvalidate.Result, len(instancePaths))
			errs := make([]error, len(instancePaths))

			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(batchConcurrency)
			for i, p := range instancePaths {
				i, p := i, p
				g.Go(func() error {
					data, err := readInstance(p)
					if err != nil {
						errs[i] = fmt.Errorf("reading instance %s: %w", p, err)
						return nil
					}
					res, err := jvalidate.ValidateBytes(ctx, s, data)
					if err != nil {
						errs[i] = fmt.Errorf("validating %s: %w", p, err)
						return nil
					}
					results[i] = res
					return nil
				})
			}
			_ = g.Wait()

			failures := 0
			for i, p := range instancePaths {
				if errs[i] != nil {
					logger.Error("instance failed", "path", p, "error", errs[i])
					failures++
					continue
				}
				if !results[i].Valid {
					failures++
				}
				printResult(cmd, opts, translator, p, results[i])
			}

			if failures > 0 {
				return &invalidError{count: failures}
			}
			return nil
		},
	}
	return cmd
}
