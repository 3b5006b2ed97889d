package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/wman/internal/batch"
	"github.com/roach88/wman/internal/model"
	"github.com/roach88/wman/internal/sheet"
	"github.com/roach88/wman/internal/store"
)

// openStore opens the configured database for one invocation. The
// returned cleanup closes it and logs a failed close instead of masking
// the command result.
func openStore(opts *RootOptions) (*store.Store, func(), error) {
	st, err := store.Open(opts.Database)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	cleanup := func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}
	return st, cleanup, nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// stringFlag returns a pointer to the flag's value when it was set
// explicitly, nil otherwise. Used to build partial-update inputs.
func stringFlag(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func intFlag(cmd *cobra.Command, name string) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetInt(name)
	return &v
}

func int64Flag(cmd *cobra.Command, name string) *int64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetInt64(name)
	return &v
}

// parseDate parses a YYYY-MM-DD CLI argument.
func parseDate(raw string) (time.Time, error) {
	d, err := time.Parse(model.DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be YYYY-MM-DD, got %q", raw)
	}
	return d, nil
}

// runBatch reads the sheet at path and replays its rows through fn,
// then reports the outcome. A fail-fast abort surfaces the failing row
// as a domain failure; continue-on-error runs every row and reports the
// counts.
func runBatch(cmd *cobra.Command, opts *RootOptions, path string, continueOnError bool, fn batch.RowFunc) error {
	rows, err := sheet.Read(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read sheet", err)
	}

	applier := &batch.Applier{Log: slog.Default(), ContinueOnError: continueOnError}
	res, err := applier.Apply(rows, fn)
	if err != nil {
		return failure("batch aborted", err)
	}

	f := opts.formatter(cmd)
	if f.Format == "json" {
		return f.Success(map[string]any{
			"applied": res.Applied,
			"failed":  len(res.Failed),
		})
	}
	return f.Success(fmt.Sprintf("Applied %d of %d rows", res.Applied, len(rows)))
}
