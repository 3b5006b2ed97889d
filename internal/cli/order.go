package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/wman/internal/batch"
	"github.com/roach88/wman/internal/model"
	"github.com/roach88/wman/internal/order"
)

// NewOrderCommand creates the order command group.
func NewOrderCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Manage orders and their product lines",
	}

	cmd.AddCommand(newOrderCreateCommand(rootOpts))
	cmd.AddCommand(newOrderAddCommand(rootOpts))
	cmd.AddCommand(newOrderAddBatchCommand(rootOpts))
	cmd.AddCommand(newOrderRemoveCommand(rootOpts))
	cmd.AddCommand(newOrderRemoveBatchCommand(rootOpts))
	cmd.AddCommand(newOrderAddCountCommand(rootOpts))
	cmd.AddCommand(newOrderAddCountBatchCommand(rootOpts))
	cmd.AddCommand(newOrderReduceCountCommand(rootOpts))
	cmd.AddCommand(newOrderReduceCountBatchCommand(rootOpts))
	cmd.AddCommand(newOrderListCommand(rootOpts))
	cmd.AddCommand(newOrderInfoCommand(rootOpts))

	return cmd
}

func newOrderCreateCommand(rootOpts *RootOptions) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:           "create <customer>",
		Short:         "Create a new order for a customer",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var d time.Time
			if date != "" {
				var err error
				if d, err = parseDate(date); err != nil {
					return err
				}
			}

			st, cleanup, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			o, err := order.New(st).Create(cmdContext(cmd), args[0], d)
			if err != nil {
				return failure("failed to create order", err)
			}
			return rootOpts.formatter(cmd).Success(fmt.Sprintf("New order with ID %d was created", o.ID))
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "order date as YYYY-MM-DD (default today)")
	return cmd
}

func newOrderAddCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <order-id> <code> <count>",
		Short: "Reserve stock for an order",
		Long: `Reserve stock for an order.

The product's on-hand count is reduced and a line is added to the
order. Either both happen or neither does.`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := order.ParseID(args[0])
			if err != nil {
				return err
			}
			count, err := parseCount(args[2])
			if err != nil {
				return err
			}

			st, cleanup, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := order.New(st).AddProduct(cmdContext(cmd), id, args[1], count); err != nil {
				return failure("failed to add product to order", err)
			}
			return rootOpts.formatter(cmd).Success(fmt.Sprintf("Added %d of product %s to order %d", count, args[1], id))
		},
	}
	return cmd
}

func newOrderAddBatchCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "add-batch <order-id> <file>",
		Short:         "Reserve stock for an order from an .xlsx file",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := order.ParseID(args[0])
			if err != nil {
				return err
			}

			st, cleanup, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			eng := order.New(st)
			cols := countColumnsFromFlags(cmd)
			continueOnError, _ := cmd.Flags().GetBool("continue-on-error")
			ctx := cmdContext(cmd)

			return runBatch(cmd, rootOpts, args[1], continueOnError, func(row []string) error {
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
				return eng.AddProduct(ctx, id, line.Code, *line.Count)
			})
		},
	}

	addCountColumnFlags(cmd)
	return cmd
}

func newOrderRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "remove <order-id> <code>",
		Short:         "Remove a product line and release its stock",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := order.ParseID(args[0])
			if err != nil {
				return err
			}

			st, cleanup, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := order.New(st).RemoveProduct(cmdContext(cmd), id, args[1]); err != nil {
				return failure("failed to remove product from order", err)
			}
			return rootOpts.formatter(cmd).Success(fmt.Sprintf("Removed product %s from order %d", args[1], id))
		},
	}
	return cmd
}

func newOrderRemoveBatchCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "remove-batch <order-id> <file>",
		Short:         "Remove multiple product lines from an .xlsx file",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := order.ParseID(args[0])
			if err != nil {
				return err
			}

			st, cleanup, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			eng := order.New(st)
			codeCol, _ := cmd.Flags().GetInt("code-column")
			continueOnError, _ := cmd.Flags().GetBool("continue-on-error")
			ctx := cmdContext(cmd)

			return runBatch(cmd, rootOpts, args[1], continueOnError, func(row []string) error {
				line, err := batch.ProjectLine(row, batch.LineColumns{Code: codeCol})
				if err != nil {
					return err
				}
				if line.Code == "" {
					return fmt.Errorf("missing product code")
				}
				return eng.RemoveProduct(ctx, id, line.Code)
			})
		},
	}

	cmd.Flags().Int("code-column", 1, "column of product codes")
	cmd.Flags().Bool("continue-on-error", false, "skip failing rows instead of aborting")
	return cmd
}

func newOrderAddCountCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "add-count <order-id> <code> <count>",
		Short:         "Reserve additional units on an existing line",
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := order.ParseID(args[0])
			if err != nil {
				return err
			}
			count, err := parseCount(args[2])
			if err != nil {
				return err
			}

			st, cleanup, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := order.New(st).AddCount(cmdContext(cmd), id, args[1], count); err != nil {
				return failure("failed to add count to order line", err)
			}
			return rootOpts.formatter(cmd).Success(fmt.Sprintf("Added %d of product %s to order %d", count, args[1], id))
		},
	}
	return cmd
}

func newOrderAddCountBatchCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "add-count-batch <order-id> <file>",
		Short:         "Reserve additional units on existing lines from an .xlsx file",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := order.ParseID(args[0])
			if err != nil {
				return err
			}

			st, cleanup, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			eng := order.New(st)
			cols := countColumnsFromFlags(cmd)
			continueOnError, _ := cmd.Flags().GetBool("continue-on-error")
			ctx := cmdContext(cmd)

			return runBatch(cmd, rootOpts, args[1], continueOnError, func(row []string) error {
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
				return eng.AddCount(ctx, id, line.Code, *line.Count)
			})
		},
	}

	addCountColumnFlags(cmd)
	return cmd
}

func newOrderReduceCountCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reduce-count <order-id> <code> <count>",
		Short: "Release reserved units back to stock",
		Long: `Release reserved units back to stock.

Reducing a line to exactly zero removes the line from the order.`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := order.ParseID(args[0])
			if err != nil {
				return err
			}
			count, err := parseCount(args[2])
			if err != nil {
				return err
			}

			st, cleanup, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := order.New(st).ReduceCount(cmdContext(cmd), id, args[1], count); err != nil {
				return failure("failed to reduce count on order line", err)
			}
			return rootOpts.formatter(cmd).Success(fmt.Sprintf("Reduced product %s on order %d by %d", args[1], id, count))
		},
	}
	return cmd
}

func newOrderReduceCountBatchCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "reduce-count-batch <order-id> <file>",
		Short:         "Release reserved units back to stock from an .xlsx file",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := order.ParseID(args[0])
			if err != nil {
				return err
			}

			st, cleanup, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			eng := order.New(st)
			cols := countColumnsFromFlags(cmd)
			continueOnError, _ := cmd.Flags().GetBool("continue-on-error")
			ctx := cmdContext(cmd)

			return runBatch(cmd, rootOpts, args[1], continueOnError, func(row []string) error {
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
				return eng.ReduceCount(ctx, id, line.Code, *line.Count)
			})
		},
	}

	addCountColumnFlags(cmd)
	return cmd
}

func newOrderListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List orders with computed totals, optionally filtered",
		Long: `List orders with their computed totals.

Totals are derived from the order's current lines and current product
prices. Price filters compare against the computed total; date bounds
are inclusive.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := model.OrderFilter{
				Customer: stringFlag(cmd, "customer"),
				MinPrice: int64Flag(cmd, "min-price"),
				MaxPrice: int64Flag(cmd, "max-price"),
			}
			if raw := stringFlag(cmd, "start-date"); raw != nil {
				d, err := parseDate(*raw)
				if err != nil {
					return err
				}
				f.StartDate = &d
			}
			if raw := stringFlag(cmd, "end-date"); raw != nil {
				d, err := parseDate(*raw)
				if err != nil {
					return err
				}
				f.EndDate = &d
			}

			st, cleanup, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			orders, err := order.New(st).GetFiltered(cmdContext(cmd), f)
			if err != nil {
				return failure("failed to list orders", err)
			}

			if rootOpts.Format == "json" {
				return rootOpts.formatter(cmd).Success(orders)
			}
			return rootOpts.renderer().Orders(cmd.OutOrStdout(), orders)
		},
	}

	cmd.Flags().String("customer", "", "filter by exact customer name")
	cmd.Flags().Int64("min-price", 0, "filter by minimum order total")
	cmd.Flags().Int64("max-price", 0, "filter by maximum order total")
	cmd.Flags().String("start-date", "", "filter by earliest order date (YYYY-MM-DD)")
	cmd.Flags().String("end-date", "", "filter by latest order date (YYYY-MM-DD)")

	return cmd
}

func newOrderInfoCommand(rootOpts *RootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:           "info <order-id>",
		Short:         "Show an order's lines with current product attributes",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := order.ParseID(args[0])
			if err != nil {
				return err
			}

			st, cleanup, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			details, err := order.New(st).GetOrderProductDetails(cmdContext(cmd), id)
			if err != nil {
				return failure("failed to get order info", err)
			}

			if output != "" {
				if err := rootOpts.renderer().SaveOrderDetails(output, details); err != nil {
					return WrapExitError(ExitCommandError, "failed to save order sheet", err)
				}
				return rootOpts.formatter(cmd).Success(fmt.Sprintf("Saved order %d to %s", id, output))
			}
			if rootOpts.Format == "json" {
				return rootOpts.formatter(cmd).Success(details)
			}
			return rootOpts.renderer().OrderDetails(cmd.OutOrStdout(), details)
		},
	}

	cmd.Flags().StringVar(&output, "output", "", "write an .xlsx order sheet instead of printing")
	return cmd
}
