package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/wman/internal/batch"
	"github.com/roach88/wman/internal/ledger"
	"github.com/roach88/wman/internal/model"
)

// NewProductCommand creates the product command group.
func NewProductCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Manage products and get product information",
	}

	cmd.AddCommand(newProductAddCommand(rootOpts))
	cmd.AddCommand(newProductAddBatchCommand(rootOpts))
	cmd.AddCommand(newProductUpdateCommand(rootOpts))
	cmd.AddCommand(newProductUpdateBatchCommand(rootOpts))
	cmd.AddCommand(newProductListCommand(rootOpts))
	cmd.AddCommand(newProductRemoveCommand(rootOpts))

	return cmd
}

// productInputFromFlags builds a partial product input from explicitly
// set flags only, so unset flags stay unset fields.
func productInputFromFlags(cmd *cobra.Command, code string) model.ProductInput {
	return model.ProductInput{
		Code:          code,
		Description:   stringFlag(cmd, "description"),
		Brand:         stringFlag(cmd, "brand"),
		Price:         int64Flag(cmd, "price"),
		CountInCarton: intFlag(cmd, "count-in-carton"),
	}
}

func addProductFieldFlags(cmd *cobra.Command) {
	cmd.Flags().String("description", "", "product description")
	cmd.Flags().String("brand", "", "product brand")
	cmd.Flags().Int64("price", 0, "unit price")
	cmd.Flags().Int("count-in-carton", 0, "units per carton")
}

func addProductColumnFlags(cmd *cobra.Command) {
	cmd.Flags().Int("code-column", 1, "column of product codes")
	cmd.Flags().Int("description-column", 2, "column of descriptions (0 = unmapped)")
	cmd.Flags().Int("brand-column", 3, "column of brands (0 = unmapped)")
	cmd.Flags().Int("count-in-carton-column", 4, "column of carton counts (0 = unmapped)")
	cmd.Flags().Int("price-column", 5, "column of prices (0 = unmapped)")
	cmd.Flags().Bool("continue-on-error", false, "skip failing rows instead of aborting")
}

func productColumnsFromFlags(cmd *cobra.Command) batch.ProductColumns {
	get := func(name string) int {
		v, _ := cmd.Flags().GetInt(name)
		return v
	}
	return batch.ProductColumns{
		Code:          get("code-column"),
		Description:   get("description-column"),
		Brand:         get("brand-column"),
		CountInCarton: get("count-in-carton-column"),
		Price:         get("price-column"),
	}
}

func newProductAddCommand(rootOpts *RootOptions) *cobra.Command {
	var code string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new product",
		Long: `Add a new product to the catalog.

New products always start with zero stock; use "wman availability add"
to restock them.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, cleanup, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			in := productInputFromFlags(cmd, code)
			if err := ledger.New(st).Add(cmdContext(cmd), in); err != nil {
				return failure("failed to add product", err)
			}
			return rootOpts.formatter(cmd).Success(fmt.Sprintf("Product %s was added", code))
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "unique product code (required)")
	addProductFieldFlags(cmd)
	_ = cmd.MarkFlagRequired("code")

	return cmd
}

func newProductAddBatchCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-batch <file>",
		Short: "Add multiple products from an .xlsx file",
		Long: `Add multiple products from an Excel (.xlsx) file.

Row 1 is treated as a header and skipped. Column flags map sheet
columns to product fields; a column of 0 leaves the field unset.`,
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
			cols := productColumnsFromFlags(cmd)
			continueOnError, _ := cmd.Flags().GetBool("continue-on-error")
			ctx := cmdContext(cmd)

			return runBatch(cmd, rootOpts, args[0], continueOnError, func(row []string) error {
				in, err := batch.ProjectProduct(row, cols)
				if err != nil {
					return err
				}
				if in.Code == "" {
					return fmt.Errorf("missing product code")
				}
				return l.Add(ctx, in)
			})
		},
	}

	addProductColumnFlags(cmd)
	return cmd
}

func newProductUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	var code string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a product's descriptive fields",
		Long: `Update a product's descriptive fields.

Only fields set explicitly are changed. Stock counts are never touched
by update; use the availability commands instead.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, cleanup, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			in := productInputFromFlags(cmd, code)
			if err := ledger.New(st).Update(cmdContext(cmd), in); err != nil {
				return failure("failed to update product", err)
			}
			return rootOpts.formatter(cmd).Success(fmt.Sprintf("Product %s was updated", code))
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "product code (required)")
	addProductFieldFlags(cmd)
	_ = cmd.MarkFlagRequired("code")

	return cmd
}

func newProductUpdateBatchCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "update-batch <file>",
		Short:         "Update multiple products from an .xlsx file",
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
			cols := productColumnsFromFlags(cmd)
			continueOnError, _ := cmd.Flags().GetBool("continue-on-error")
			ctx := cmdContext(cmd)

			return runBatch(cmd, rootOpts, args[0], continueOnError, func(row []string) error {
				in, err := batch.ProjectProduct(row, cols)
				if err != nil {
					return err
				}
				if in.Code == "" {
					return fmt.Errorf("missing product code")
				}
				return l.Update(ctx, in)
			})
		},
	}

	addProductColumnFlags(cmd)
	return cmd
}

func newProductListCommand(rootOpts *RootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List products, optionally filtered",
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
			}
			products, err := ledger.New(st).GetFiltered(cmdContext(cmd), f)
			if err != nil {
				return failure("failed to list products", err)
			}

			if output != "" {
				if err := rootOpts.renderer().SaveProducts(output, products); err != nil {
					return WrapExitError(ExitCommandError, "failed to save pricelist", err)
				}
				return rootOpts.formatter(cmd).Success(fmt.Sprintf("Saved %d products to %s", len(products), output))
			}
			if rootOpts.Format == "json" {
				return rootOpts.formatter(cmd).Success(products)
			}
			return rootOpts.renderer().Products(cmd.OutOrStdout(), products)
		},
	}

	cmd.Flags().StringVar(&output, "output", "", "write an .xlsx pricelist instead of printing")
	cmd.Flags().String("brand", "", "filter by exact brand")
	cmd.Flags().Int64("min-price", 0, "filter by minimum price")
	cmd.Flags().Int64("max-price", 0, "filter by maximum price")

	return cmd
}

func newProductRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	var idempotent bool

	cmd := &cobra.Command{
		Use:   "remove <code>",
		Short: "Delete the product with the given code",
		Long: `Delete the product with the given code.

Removal fails while any order still reserves the product. With
--idempotent a missing product is logged and treated as success, for
cleanup scripts that re-run.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, cleanup, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			code := args[0]
			if err := ledger.New(st).Remove(cmdContext(cmd), code); err != nil {
				// The one sanctioned best-effort path: cleanup callers
				// opt in to ignoring an already-absent product.
				if idempotent && model.IsNotFound(err) {
					slog.Warn("product already absent, nothing to remove", "code", code)
					return rootOpts.formatter(cmd).Success(fmt.Sprintf("Product %s was already absent", code))
				}
				return failure("failed to remove product", err)
			}
			return rootOpts.formatter(cmd).Success(fmt.Sprintf("Product %s was removed", code))
		},
	}

	cmd.Flags().BoolVar(&idempotent, "idempotent", false, "treat a missing product as success")

	return cmd
}
