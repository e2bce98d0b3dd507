package main

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/etnz/pkgindex/apt"
	"github.com/etnz/pkgindex/deb"
	"github.com/etnz/pkgindex/stanza"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// maxParallelLoads bounds the inputs loaded at the same time.
const maxParallelLoads = 4

func (a *app) parseCommand() *cobra.Command {
	var (
		format string
		raw    bool
		quiet  bool
		output string
		pretty bool
		repo   apt.RepoConfig
	)
	cmd := &cobra.Command{
		Use:   "parse [input...]",
		Short: "Parse stanza files into records",
		Long: `Parses every input with the selected format and prints all the records as a
single array, inputs in argument order and stanzas in source order.

Without inputs, the Packages indices of the --repo repository or of the
config file sources are fetched. Without any of those, stdin is read.

Example:
  pkgindex parse --pretty Packages
  pkgindex parse --repo https://packages.microsoft.com/debian/12/prod --suite bookworm --arch amd64
  zcat Packages.gz | pkgindex parse -r`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(a.configPath)
			if err != nil {
				return err
			}

			// Flags override the config file.
			flags := cmd.Flags()
			if flags.Changed("format") {
				config.Format = format
			}
			if flags.Changed("raw") {
				config.Raw = raw
			}
			if flags.Changed("quiet") {
				config.Quiet = quiet
			}
			if flags.Changed("output") {
				config.Output = output
			}
			if flags.Changed("pretty") {
				config.Pretty = pretty
			}
			if repo.URL != "" {
				config.Sources = []apt.RepoConfig{repo}
			}
			if err := config.validate(); err != nil {
				return err
			}

			parser, err := deb.Lookup(config.Format)
			if err != nil {
				return err
			}
			inputs, err := resolveInputs(args, config.Sources)
			if err != nil {
				return err
			}

			records, err := a.parseAll(cmd.Context(), parser, config, inputs, cmd.InOrStdin())
			if err != nil {
				return err
			}
			return encode(cmd.OutOrStdout(), records, config.Output, config.Pretty)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&format, "format", "f", deb.PackageIndex.Info.Name, "Input format (see 'pkgindex formats')")
	flags.BoolVarP(&raw, "raw", "r", false, "Keep every value as a string")
	flags.BoolVarP(&quiet, "quiet", "q", false, "Suppress parse warnings")
	flags.StringVarP(&output, "output", "o", "json", "Output encoding: json or yaml")
	flags.BoolVarP(&pretty, "pretty", "p", false, "Indent the JSON output")
	flags.StringVar(&repo.URL, "repo", "", "APT repository URL to fetch Packages indices from")
	flags.StringVar(&repo.Suite, "suite", "", "Suite of --repo (empty for a flat repository)")
	flags.StringVar(&repo.Component, "component", "main", "Component of --repo")
	flags.StringSliceVar(&repo.Architectures, "arch", nil, "Architectures of --repo")
	return cmd
}

// resolveInputs returns the locations to parse: the arguments, else the
// index URLs of the sources, else stdin.
func resolveInputs(args []string, sources []apt.RepoConfig) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	var inputs []string
	for _, r := range sources {
		urls, err := r.IndexURLs()
		if err != nil {
			return nil, fmt.Errorf("invalid source %s: %w", r.URL, err)
		}
		inputs = append(inputs, urls...)
	}
	if len(inputs) == 0 {
		inputs = []string{"-"}
	}
	return inputs, nil
}

// parseAll loads and parses the inputs concurrently and returns their
// records in input order.
func (a *app) parseAll(ctx context.Context, p deb.Parser, config *Config, inputs []string, stdin io.Reader) ([]stanza.Record, error) {
	loader := &apt.Loader{
		Client:    &http.Client{Timeout: config.Timeout},
		UserAgent: config.UserAgent,
		Stdin:     stdin,
	}

	results := make([]stanza.Result, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelLoads)
	for i, input := range inputs {
		g.Go(func() error {
			a.logger.Debug("loading input", zap.String("input", input), zap.String("format", p.Info.Name))
			text, err := loader.Load(ctx, input)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", input, err)
			}
			results[i] = p.Parse(text, config.Raw, config.Quiet)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := []stanza.Record{}
	for i, res := range results {
		a.report(inputs[i], res)
		records = append(records, res.Records...)
	}
	return records, nil
}

// report logs the warnings of a result and, at debug level, a summary of
// each package.
func (a *app) report(input string, res stanza.Result) {
	for _, w := range res.Warnings {
		a.logger.Warn(w.Message,
			zap.String("input", input),
			zap.Stringer("kind", w.Kind),
			zap.Int("stanza", w.Stanza),
			zap.Int("record", w.Record),
			zap.Int("line", w.Line),
			zap.String("key", w.Key),
		)
	}
	for _, rec := range res.Records {
		name, _ := rec.GetString(deb.FieldPackage.Key())
		version, _ := rec.GetString(deb.FieldVersion.Key())
		arch, _ := rec.GetString(deb.FieldArchitecture.Key())
		size, _ := rec.GetInt(deb.FieldInstalledSize.Key())
		depends, _ := rec.GetList(deb.FieldDepends.Key())
		a.logger.Debug("parsed record",
			zap.String("input", input),
			zap.String("package", name),
			zap.String("version", version),
			zap.String("architecture", arch),
			zap.Int("installed_size", size),
			zap.Strings("depends", depends),
		)
	}
	a.logger.Debug("parsed input", zap.String("input", input), zap.Int("records", len(res.Records)), zap.Int("warnings", len(res.Warnings)))
}
