package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/wman/internal/model"
)

// NewCustomerCommand creates the customer command group.
func NewCustomerCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Manage customers",
	}

	cmd.AddCommand(newCustomerCreateCommand(rootOpts))
	cmd.AddCommand(newCustomerListCommand(rootOpts))

	return cmd
}

func newCustomerCreateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "create <name>",
		Short:         "Create a new customer",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, cleanup, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			c, err := st.Queries().CreateCustomer(cmdContext(cmd), args[0])
			if err != nil {
				return failure("failed to create customer", err)
			}
			return rootOpts.formatter(cmd).Success(fmt.Sprintf("Customer %s was created with ID %d", c.Name, c.ID))
		},
	}
	return cmd
}

func newCustomerListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List all customers",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, cleanup, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			customers, err := st.Queries().SelectCustomers(cmdContext(cmd), model.CustomerFilter{})
			if err != nil {
				return failure("failed to list customers", err)
			}

			if rootOpts.Format == "json" {
				return rootOpts.formatter(cmd).Success(customers)
			}
			return rootOpts.renderer().Customers(cmd.OutOrStdout(), customers)
		},
	}
	return cmd
}
