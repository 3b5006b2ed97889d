package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/wman/internal/report"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	Database string
	Config   string
	Currency string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// Execute runs the root command and renders any failure in the selected
// output format. It returns the process exit code.
func Execute() int {
	opts, cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		f := &OutputFormatter{Format: opts.Format, Writer: os.Stderr, Verbose: opts.Verbose}
		_ = f.Error(err)
		return GetExitCode(err)
	}
	return ExitSuccess
}

// NewRootCommand creates the root command for the wman CLI.
func NewRootCommand() *cobra.Command {
	_, cmd := newRootCommand()
	return cmd
}

func newRootCommand() (*RootOptions, *cobra.Command) {
	opts := &RootOptions{Currency: report.DefaultCurrency}

	cmd := &cobra.Command{
		Use:   "wman",
		Short: "wman - warehouse manager",
		Long:  "A ledger for warehouse product stock and customer orders.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}

			logLevel := slog.LevelInfo
			if opts.Verbose {
				logLevel = slog.LevelDebug
			}
			handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: logLevel,
			})
			slog.SetDefault(slog.New(handler))

			if opts.Config != "" {
				cfg, err := loadConfig(opts.Config)
				if err != nil {
					return err
				}
				if cfg.Database != "" && !cmd.Flags().Changed("db") {
					opts.Database = cfg.Database
				}
				if cfg.Currency != "" && !cmd.Flags().Changed("currency") {
					opts.Currency = cfg.Currency
				}
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "warehouse.db", "path to SQLite database")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "path to YAML config file")
	cmd.PersistentFlags().StringVar(&opts.Currency, "currency", report.DefaultCurrency, "display currency code")

	// Add subcommands
	cmd.AddCommand(NewProductCommand(opts))
	cmd.AddCommand(NewAvailabilityCommand(opts))
	cmd.AddCommand(NewCustomerCommand(opts))
	cmd.AddCommand(NewOrderCommand(opts))

	return opts, cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

func (opts *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}
}

func (opts *RootOptions) renderer() *report.Renderer {
	return report.NewRenderer(opts.Currency)
}
