package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ChicagoDave/costplanner/internal/config"
	"github.com/ChicagoDave/costplanner/internal/logging"
	"github.com/ChicagoDave/costplanner/internal/server"
	"github.com/ChicagoDave/costplanner/pkg/pricing"
	"github.com/phuslu/log"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
)

// errInvalidProject makes validate exit non-zero after printing the report.
var errInvalidProject = errors.New("project has validation errors")

// app carries what every subcommand needs once flags are parsed.
type app struct {
	configPath string
	logLevel   string

	cfg   *config.Config
	table *pricing.Table
	lang  language.Tag
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errInvalidProject) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "costplanner",
		Short:         "Construction cost estimation for Turkish building projects",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.init()
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a TOML config file")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override logging.level (debug, info, warn, error)")

	rootCmd.AddCommand(estimateCmd(a))
	rootCmd.AddCommand(validateCmd(a))
	rootCmd.AddCommand(roiCmd(a))
	rootCmd.AddCommand(riskCmd(a))
	rootCmd.AddCommand(trendCmd(a))
	rootCmd.AddCommand(compareCmd(a))
	rootCmd.AddCommand(reportCmd(a))
	rootCmd.AddCommand(pricingCmd(a))
	rootCmd.AddCommand(serveCmd(a))
	return rootCmd
}

func (a *app) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	table := pricing.Default()
	if cfg.Pricing.File != "" {
		table, err = pricing.Load(cfg.Pricing.File)
		if err != nil {
			return err
		}
		log.Debug().Str("path", cfg.Pricing.File).Msg("loaded pricing table")
	}

	a.cfg = cfg
	a.table = table
	a.lang = language.Turkish
	if tag, err := language.Parse(cfg.Report.Language); err == nil {
		a.lang = tag
	}
	return nil
}

func estimateCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "estimate [project-path]",
		Short: "Compute the cost breakdown and duration for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runEstimate(cmd.OutOrStdout(), args[0], asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func validateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [project-path]",
		Short: "Validate a project file without estimating it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runValidate(cmd.OutOrStdout(), args[0])
		},
	}
}

func roiCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "roi [project-path]",
		Short: "Analyze return on investment using the project's revenue section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runROI(cmd.OutOrStdout(), args[0], asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func riskCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Score the standard risk catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runRisk(cmd.OutOrStdout(), asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func trendCmd(a *app) *cobra.Command {
	var (
		seed   uint64
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "trend [project-path]",
		Short: "Show twelve months of cost history and a six-month forecast",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTrend(cmd.OutOrStdout(), args[0], a.resolveSeed(seed), asJSON)
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", 0, "history seed (0 uses trend.seed or a fresh value)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func compareCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "compare [project-path...]",
		Short: "Compare scenarios side by side; the first is the baseline",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCompare(cmd.OutOrStdout(), args)
		},
	}
}

func reportCmd(a *app) *cobra.Command {
	var (
		format string
		output string
		seed   uint64
	)
	cmd := &cobra.Command{
		Use:   "report [project-path]",
		Short: "Render a full cost report as Markdown, HTML or PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runReport(cmd.OutOrStdout(), args[0], format, output, a.resolveSeed(seed))
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "md", "output format: md, html or pdf")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "trend history seed")
	return cmd
}

func pricingCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pricing",
		Short: "Print the active pricing reference table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printPricing(cmd.OutOrStdout(), a.table, a.lang)
			return nil
		},
	}
}

func serveCmd(a *app) *cobra.Command {
	var (
		port int
		host string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.Server.Port = port
			}
			if cmd.Flags().Changed("host") {
				a.cfg.Server.Host = host
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.New(a.cfg, a.table, &log.DefaultLogger).Start(ctx)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 8080, "HTTP server port")
	cmd.Flags().StringVar(&host, "host", "localhost", "HTTP listen host")
	return cmd
}
