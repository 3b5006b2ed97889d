package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/wman/internal/batch"
	"github.com/roach88/wman/internal/ledger"
	"github.com/roach88/wman/internal/model"
)

// NewAvailabilityCommand creates the availability command group.
func NewAvailabilityCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "availability",
		Short: "Manage and inspect warehouse stock levels",
	}

	cmd.AddCommand(newAvailabilityAddCommand(rootOpts))
	cmd.AddCommand(newAvailabilityAddBatchCommand(rootOpts))
	cmd.AddCommand(newAvailabilityReduceCommand(rootOpts))
	cmd.AddCommand(newAvailabilityReduceBatchCommand(rootOpts))
	cmd.AddCommand(newAvailabilityListCommand(rootOpts))
	cmd.AddCommand(newAvailabilityInfoCommand(rootOpts))

	return cmd
}

func addCountColumnFlags(cmd *cobra.Command) {
	cmd.Flags().Int("code-column", 1, "column of product codes")
	cmd.Flags().Int("count-column", 2, "column of counts")
	cmd.Flags().Bool("continue-on-error", false, "skip failing rows instead of aborting")
}

func countColumnsFromFlags(cmd *cobra.Command) batch.LineColumns {
	code, _ := cmd.Flags().GetInt("code-column")
	count, _ := cmd.Flags().GetInt("count-column")
	return batch.LineColumns{Code: code, Count: count}
}

// parseCount parses a positional count argument. Range checks are left
// to the ledger so the error taxonomy stays in one place.
func parseCount(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("count must be an integer, got %q", raw)
	}
	return n, nil
}

func newAvailabilityAddCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "add <code> <count>",
		Short:         "Increase a product's stock",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := parseCount(args[1])
			if err != nil {
				return err
			}

			st, cleanup, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := ledger.New(st).AddCount(cmdContext(cmd), args[0], count); err != nil {
				return failure("failed to add stock", err)
			}
			return rootOpts.formatter(cmd).Success(fmt.Sprintf("Added %d to product %s", count, args[0]))
		},
	}
	return cmd
}

func newAvailabilityAddBatchCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "add-batch <file>",
		Short:         "Increase stock for multiple products from an .xlsx file",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, cleanup, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			l := ledger.New(st)
			cols := countColumnsFromFlags(cmd)
			continueOnError, _ := cmd.Flags().GetBool("continue-on-error")
			ctx := cmdContext(cmd)

			return runBatch(cmd, rootOpts, args[0], continueOnError, func(row []string) error {
				line, err := batch.ProjectLine(row, cols)
				if err != nil {
					return err
				}
				if line.Code == "" {
					return fmt.Errorf("missing product code")
				}
				if line.Count == nil {
					return fmt.Errorf("missing count for product %s", line.Code)
				}
				return l.AddCount(ctx, line.Code, *line.Count)
			})
		},
	}

	addCountColumnFlags(cmd)
	return cmd
}

func newAvailabilityReduceCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "reduce <code> <count>",
		Short:         "Decrease a product's stock",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := parseCount(args[1])
			if err != nil {
				return err
			}

			st, cleanup, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := ledger.New(st).ReduceCount(cmdContext(cmd), args[0], count); err != nil {
				return failure("failed to reduce stock", err)
			}
			return rootOpts.formatter(cmd).Success(fmt.Sprintf("Reduced product %s by %d", args[0], count))
		},
	}
	return cmd
}

func newAvailabilityReduceBatchCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "reduce-batch <file>",
		Short:         "Decrease stock for multiple products from an .xlsx file",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, cleanup, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			l := ledger.New(st)
			cols := countColumnsFromFlags(cmd)
			continueOnError, _ := cmd.Flags().GetBool("continue-on-error")
			ctx := cmdContext(cmd)

			return runBatch(cmd, rootOpts, args[0], continueOnError, func(row []string) error {
				line, err := batch.ProjectLine(row, cols)
				if err != nil {
					return err
				}
				if line.Code == "" {
					return fmt.Errorf("missing product code")
				}
				if line.Count == nil {
					return fmt.Errorf("missing count for product %s", line.Code)
				}
				return l.ReduceCount(ctx, line.Code, *line.Count)
			})
		},
	}

	addCountColumnFlags(cmd)
	return cmd
}

func newAvailabilityListCommand(rootOpts *RootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List stock levels, optionally filtered",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, cleanup, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			f := model.ProductFilter{
				Brand:    stringFlag(cmd, "brand"),
				MinPrice: int64Flag(cmd, "min-price"),
				MaxPrice: int64Flag(cmd, "max-price"),
				MinCount: intFlag(cmd, "min-count"),
				MaxCount: intFlag(cmd, "max-count"),
			}
			products, err := ledger.New(st).GetFiltered(cmdContext(cmd), f)
			if err != nil {
				return failure("failed to list availability", err)
			}

			if output != "" {
				if err := rootOpts.renderer().SaveAvailability(output, products); err != nil {
					return WrapExitError(ExitCommandError, "failed to save availability sheet", err)
				}
				return rootOpts.formatter(cmd).Success(fmt.Sprintf("Saved %d products to %s", len(products), output))
			}
			if rootOpts.Format == "json" {
				return rootOpts.formatter(cmd).Success(products)
			}
			return rootOpts.renderer().Availability(cmd.OutOrStdout(), products)
		},
	}

	cmd.Flags().StringVar(&output, "output", "", "write an .xlsx availability sheet instead of printing")
	cmd.Flags().String("brand", "", "filter by exact brand")
	cmd.Flags().Int64("min-price", 0, "filter by minimum price")
	cmd.Flags().Int64("max-price", 0, "filter by maximum price")
	cmd.Flags().Int("min-count", 0, "filter by minimum stock count")
	cmd.Flags().Int("max-count", 0, "filter by maximum stock count")

	return cmd
}

func newAvailabilityInfoCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "info <codes>",
		Short:         "Show stock for a comma-separated list of product codes",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			codes := strings.Split(args[0], ",")
			for i := range codes {
				codes[i] = strings.TrimSpace(codes[i])
			}

			st, cleanup, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			products, err := ledger.New(st).GetMany(cmdContext(cmd), codes)
			if err != nil {
				return failure("failed to get availability info", err)
			}

			if rootOpts.Format == "json" {
				return rootOpts.formatter(cmd).Success(products)
			}
			return rootOpts.renderer().Availability(cmd.OutOrStdout(), products)
		},
	}
	return cmd
}
