// Package cli provides the Cobra command structure for commonlexer.
package cli

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	cl "github.com/commonlexer/commonlexer"
	"github.com/commonlexer/commonlexer/grammar"
	"github.com/commonlexer/commonlexer/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalOptions are the flags shared by every command, plus what was
// loaded from them before the command runs
type globalOptions struct {
	debug      bool
	configPath string
	color      string

	config *cl.Config
}

// NewRootCommand creates the root commonlexer command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "commonlexer",
		Short: "A data driven parser for any language",
		Long: `commonlexer parses text with grammars described in a small rule language.

Without a grammar it reads grammar files themselves, which makes it handy
for checking a grammar before using it. With --grammar it compiles the given
grammar file and parses the input with it, reporting every problem found
along with the parse tree.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger := logging.FromContext(cmd.Context())
			if err := opts.load(logger); err != nil {
				return err
			}
			cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&opts.color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newLexCommand(opts))
	rootCmd.AddCommand(newRulesCommand(opts))
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}

// load reads the configuration and applies its log level to `logger`.
// The command line checks that inputs are consumed entirely unless
// the config file says otherwise.
func (o *globalOptions) load(logger *log.Logger) error {
	o.config = cl.NewConfig()
	o.config.SetBool("engine.require_full_match", true)
	if o.configPath != "" {
		if err := o.config.MergeFile(o.configPath); err != nil {
			return err
		}
	}

	logger.SetLevel(logging.ParseLevel(o.config.GetString("log.level")))
	if o.debug {
		logger.SetLevel(log.DebugLevel)
	}
	logger.Debug("configuration loaded", logging.FieldPath, o.configPath)
	return nil
}

func (o *globalOptions) engineOptions(logger *log.Logger) []cl.Option {
	return []cl.Option{
		cl.WithConfig(o.config),
		cl.WithLogger(logger),
	}
}

// engine returns the engine compiled from the grammar file at `path`,
// or the one that reads grammar files when `path` is empty
func (o *globalOptions) engine(logger *log.Logger, path string) (*cl.Engine, error) {
	if path == "" {
		return grammar.NewEngine(o.engineOptions(logger)...), nil
	}
	g, err := grammar.Load(grammar.NewFileLoader(), path, grammar.WithEngineOptions(o.engineOptions(logger)...))
	if err != nil {
		return nil, err
	}
	for _, d := range g.Diagnostics {
		logger.Warn(d.Message, logging.FieldGrammar, path)
	}
	return g.Engine, nil
}
