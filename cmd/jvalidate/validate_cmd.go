package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/nanlint/jvalidate/compiler"
	"github.com/nanlint/jvalidate/i18n"

	jvalidate "github.com/nanlint/jvalidate"
)

func newValidateCmd(logger *slog.Logger) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "validate <schema> [<instance>...]",
		Short: "Validate one or more JSON instances against a schema",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			opts, err := resolveOptions(cmd, cfg)
			if err != nil {
				return err
			}

			schemaPath := args[0]
			instancePaths := args[1:]

			run := func() (int, error) {
				return runValidation(cmd, logger, opts, schemaPath, instancePaths)
			}

			if !watch {
				failures, err := run()
				if err != nil {
					return err
				}
				if failures > 0 {
					return &invalidError{count: failures}
				}
				return nil
			}

			return watchAndRun(cmd.Context(), logger, append([]string{schemaPath}, instancePaths...), run)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-validate whenever the schema or an instance file changes")
	return cmd
}

type cliOptions struct {
	locale       string
	strictFormat bool
	format       string
}

func resolveOptions(cmd *cobra.Command, cfg fileConfig) (cliOptions, error) {
	locale, _ := cmd.Flags().GetString("locale")
	if locale == "" {
		locale = cfg.Locale
	}
	strict, _ := cmd.Flags().GetBool("strict-format")
	if !cmd.Flags().Changed("strict-format") {
		strict = cfg.StrictFormat
	}
	format, _ := cmd.Flags().GetString("format")
	if !cmd.Flags().Changed("format") && cfg.Format != "" {
		format = cfg.Format
	}
	if format != "text" && format != "json" {
		return cliOptions{}, fmt.Errorf("invalid --format %q: must be text or json", format)
	}
	return cliOptions{locale: locale, strictFormat: strict, format: format}, nil
}

// runValidation compiles schemaPath and validates every instancePath
// (stdin, if instancePaths is empty) against it, printing one outcome per
// instance and returning how many failed.
func runValidation(cmd *cobra.Command, logger *slog.Logger, opts cliOptions, schemaPath string, instancePaths []string) (int, error) {
	schemaData, err := os.ReadFile(schemaPath)
	if err != nil {
		return 0, fmt.Errorf("reading schema: %w", err)
	}
	comp := compiler.New(compiler.Options{StrictFormat: opts.strictFormat})
	s, err := comp.CompileBytes(schemaData)
	if err != nil {
		return 0, fmt.Errorf("compiling schema: %w", err)
	}

	translator := i18n.English
	if opts.locale != "" {
		translator = i18n.Resolve(opts.locale)
	}

	if len(instancePaths) == 0 {
		instancePaths = []string{"-"}
	}

	failures := 0
	for _, p := range instancePaths {
		data, err := readInstance(p)
		if err != nil {
			return failures, fmt.Errorf("reading instance %s: %w", p, err)
		}
		res, err := jvalidate.ValidateBytes(cmd.Context(), s, data)
		if err != nil {
			return failures, fmt.Errorf("validating %s: %w", p, err)
		}
		if !res.Valid {
			failures++
		}
		printResult(cmd, opts, translator, p, res)
	}
	return failures, nil
}

func readInstance(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func printResult(cmd *cobra.Command, opts cliOptions, translator i18n.Translator, path string, res jvalidate.Result) {
	out := cmd.OutOrStdout()
	if opts.format == "json" {
		type jsonProblem struct {
			Path    string `json:"path"`
			Keyword string `json:"keyword"`
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		payload := struct {
			Instance string        `json:"instance"`
			Valid    bool          `json:"valid"`
			Problems []jsonProblem `json:"problems"`
		}{Instance: path, Valid: res.Valid}
		for _, p := range res.Problems {
			payload.Problems = append(payload.Problems, jsonProblem{
				Path: p.Path, Keyword: p.Keyword, Code: p.Code,
				Message: translator.Message(p.Code, p.Params),
			})
		}
		enc := json.NewEncoder(out)
		_ = enc.Encode(payload)
		return
	}
	if res.Valid {
		fmt.Fprintf(out, "%s: valid\n", path)
		return
	}
	fmt.Fprintf(out, "%s: invalid\n", path)
	for _, p := range res.Problems {
		fmt.Fprintf(out, "  %s (%s): %s\n", p.Path, p.Keyword, translator.Message(p.Code, p.Params))
	}
}

// watchAndRun runs fn once immediately, then again every time one of paths
// changes, until ctx is canceled.
func watchAndRun(ctx context.Context, logger *slog.Logger, paths []string, fn func() (int, error)) error {
	if _, err := fn(); err != nil {
		logger.Error("validation run failed", "error", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer w.Close()

	for _, p := range paths {
		if p == "-" {
			continue
		}
		if err := w.Add(p); err != nil {
			return fmt.Errorf("watching %s: %w", p, err)
		}
	}
	logger.Info("watching for changes", "paths", paths)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if _, err := fn(); err != nil {
				logger.Error("validation run failed", "error", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		}
	}
}
