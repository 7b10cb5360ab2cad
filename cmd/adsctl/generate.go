package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/BerylCAtieno/meta-ads-strategist/internal/config"
	"github.com/BerylCAtieno/meta-ads-strategist/internal/form"
	"github.com/BerylCAtieno/meta-ads-strategist/internal/generator"
	"github.com/BerylCAtieno/meta-ads-strategist/internal/logger"
	"github.com/BerylCAtieno/meta-ads-strategist/internal/models"
	"github.com/BerylCAtieno/meta-ads-strategist/internal/render"
)

const (
	formatTerminal = "terminal"
	formatMarkdown = "markdown"
	formatJSON     = "json"
	formatYAML     = "yaml"
)

type generateOptions struct {
	niche    string
	location string
	format   string
	timeout  time.Duration
}

func newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a strategy report for a niche and city/state",
		Example: `  adsctl generate --niche "Handcrafted leather bags" --location "Jaipur, Rajasthan"
  adsctl generate --format json > report.json`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return validateFormat(opts.format)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.niche, "niche", "n", form.DefaultNiche, "Niche or product")
	flags.StringVarP(&opts.location, "location", "l", form.DefaultLocation, "City and state")
	flags.StringVarP(&opts.format, "format", "f", formatTerminal, "Output format: terminal, markdown, json or yaml")
	flags.DurationVar(&opts.timeout, "timeout", 0, "Generation timeout (overrides GENERATION_TIMEOUT)")

	return cmd
}

func validateFormat(format string) error {
	switch format {
	case formatTerminal, formatMarkdown, formatJSON, formatYAML:
		return nil
	}
	return fmt.Errorf("unknown format %q: must be terminal, markdown, json or yaml", format)
}

func runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	in := form.Input{Niche: opts.niche, Location: opts.location}
	if err := in.Validate(); err != nil {
		return err
	}
	in = in.Normalize()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	genOpts := cfg.Generator()
	if opts.timeout > 0 {
		genOpts.Timeout = opts.timeout
	}

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Encoding: "console", OutputPath: "stderr"})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	gen, err := generator.New(cmd.Context(), genOpts, log)
	if err != nil {
		return err
	}
	defer gen.Close()

	fmt.Fprintf(cmd.ErrOrStderr(), "Generating strategy for %q in %q...\n", in.Niche, in.Location)
	report, err := gen.Generate(cmd.Context(), in.Niche, in.Location)
	if err != nil {
		return fmt.Errorf("%s", generator.UserMessage(err))
	}

	return writeReport(cmd.OutOrStdout(), opts.format, report)
}

func writeReport(w io.Writer, format string, report *models.Report) error {
	switch format {
	case formatMarkdown:
		_, err := io.WriteString(w, render.Markdown(report))
		return err
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	default:
		return render.Terminal(w, report)
	}
}
