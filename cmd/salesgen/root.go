package main

import (
	"fmt"

	"github.com/TFMV/salesgen/config"
	"github.com/TFMV/salesgen/logger"
	"github.com/TFMV/salesgen/pkg/sales"
	"github.com/TFMV/salesgen/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// app carries the state shared by all commands of one invocation.
type app struct {
	v          *viper.Viper
	configPath string
	cfg        *config.Config
	log        *zap.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "salesgen",
		Short: "salesgen generates a synthetic retail clothing sales dataset",
		Long: `salesgen generates a reproducible synthetic dataset of retail clothing
sales transactions in the Philippines and saves it as CSV.

Run without arguments to write product_sales_data.csv with the standard
11,350 rows and print a preview of the table.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), a, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "Optional YAML configuration file")
	pf.String("log-file", "", "Also write JSON logs to this file")
	pf.String("log-level", "info", "Minimum log level (debug, info, warn, error)")
	pf.String("pricing", string(sales.PricingLegacy), "Price tier rule (legacy, category)")
	pf.Uint64("seed", sales.DefaultSeed, "Seed for every random source")

	f := rootCmd.Flags()
	f.IntP("records", "n", sales.DefaultRecordCount, "Number of transactions to generate")
	f.StringP("output", "o", config.DefaultOutputPath, "Path of the CSV file to write")
	f.Int("preview", 60, "Rows above which the printed table is truncated")

	a.bind(pf.Lookup("log-file"), "log.file")
	a.bind(pf.Lookup("log-level"), "log.level")
	a.bind(pf.Lookup("pricing"), "generator.pricing")
	a.bind(pf.Lookup("seed"), "generator.seed")
	a.bind(f.Lookup("records"), "generator.records")
	a.bind(f.Lookup("output"), "output.path")
	a.bind(f.Lookup("preview"), "output.preview")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "version",
			Short: "Print the version of salesgen",
			Args:  cobra.NoArgs,
			// version needs no configuration or logger
			PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), version.Long())
			},
		},
		&cobra.Command{
			Use:   "validate-config",
			Short: "Validate the configuration and print the effective values",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return printConfig(cmd.OutOrStdout(), a.cfg)
			},
		},
		newVerifyCommand(a),
		newServeCommand(a),
	)

	return rootCmd
}

func (a *app) bind(flag *pflag.Flag, key string) {
	if err := a.v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", flag.Name, err))
	}
}

// setup loads the configuration and initializes the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.v, a.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.cfg = cfg

	logger.ResetLogger()
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetLogPath(cfg.Log.File)
	if err := logger.SetLevel(cfg.Log.Level); err != nil {
		return err
	}
	a.log = logger.GetLogger()
	return nil
}
