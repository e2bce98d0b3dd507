package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/etnz/pkgindex/stanza"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.yaml.in/yaml/v3"
)

// app holds the state shared by the commands of one invocation.
type app struct {
	configPath string
	verbose    bool

	// buildLogger creates the logger once flags are parsed.
	buildLogger func(verbose bool) (*zap.Logger, error)
	logger      *zap.Logger
}

func newApp() *app {
	return &app{
		buildLogger: productionLogger,
		logger:      zap.NewNop(),
	}
}

func productionLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

// command returns the root command.
func (a *app) command() *cobra.Command {
	root := &cobra.Command{
		Use:   "pkgindex",
		Short: "Convert Debian stanza files into JSON or YAML records",
		Long: `pkgindex reads Debian stanza files (APT Packages indices, the dpkg status
database, .deb control files) and prints one record per stanza.

Inputs can be local files, http(s) URLs or "-" for stdin. Gzip compressed and
clearsigned files are decoded transparently, and a .deb file yields its
control stanza.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := a.buildLogger(a.verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&a.configPath, "config", "pkgindex.yaml", "Path to config file")

	root.AddCommand(a.parseCommand(), a.formatsCommand())
	return root
}

// encode writes v to w as JSON or YAML. Records go through
// stanza.WriteJSON so their strings are not HTML escaped.
func encode(w io.Writer, v any, output string, pretty bool) error {
	if output == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	if records, ok := v.([]stanza.Record); ok {
		return stanza.WriteJSON(w, records, pretty)
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().command().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal: %v\n", err)
		stop()
		os.Exit(1)
	}
}
