package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	cl "github.com/commonlexer/commonlexer"
	"github.com/commonlexer/commonlexer/internal/logging"
	"github.com/commonlexer/commonlexer/internal/report"
)

type lexFlags struct {
	grammar     string
	start       string
	tree        bool
	diagnostics string
	summary     bool
}

func newLexCommand(opts *globalOptions) *cobra.Command {
	flags := &lexFlags{}

	cmd := &cobra.Command{
		Use:   "lex <file>",
		Short: "Parse a file and report problems",
		Long: `Parse a file and print the diagnostics found while parsing it.

The file is read as a grammar file unless --grammar points at the grammar
to parse it with. The exit code is non-zero when any error is found, either
in the grammar or in the file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLex(cmd.Context(), cmd.OutOrStdout(), opts, flags, args[0])
		},
	}

	cmd.Flags().StringVarP(&flags.grammar, "grammar", "g", "", "grammar file to parse the input with")
	cmd.Flags().StringVar(&flags.start, "start", "", "rule to start parsing from")
	cmd.Flags().BoolVar(&flags.tree, "tree", false, "print the parse tree")
	cmd.Flags().StringVar(&flags.diagnostics, "diagnostics", "",
		"lowest severity shown: error, warning or all (defaults to report.diagnostics)")
	cmd.Flags().BoolVar(&flags.summary, "summary", true, "print a summary line")

	return cmd
}

func runLex(ctx context.Context, w io.Writer, opts *globalOptions, flags *lexFlags, path string) error {
	logger := logging.FromContext(ctx)
	styles := report.NewStyles(report.IsColorEnabled(opts.color, w))

	engine, err := opts.engine(logger, flags.grammar)
	if err != nil {
		return reportError(w, styles, err)
	}
	if flags.start != "" {
		engine.SetStartRule(flags.start)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	src := cl.NewSourceTextFromBytes(path, data)

	started := time.Now()
	result := engine.Parse(src)
	elapsed := time.Since(started)
	if err := result.Err(); err != nil {
		return err
	}
	logger.Debug("parsed", logging.FieldPath, path, logging.FieldBytes, len(data), logging.FieldDuration, elapsed)

	level := flags.diagnostics
	if level == "" {
		level = opts.config.GetString("report.diagnostics")
	}
	if err := styles.Write(w, result, cl.ParseSeverity(level)); err != nil {
		return err
	}

	if flags.tree {
		tree := result.Pretty()
		if report.IsColorEnabled(opts.color, w) {
			tree = result.Highlight()
		}
		if _, err := io.WriteString(w, tree); err != nil {
			return err
		}
	}

	if flags.summary {
		if _, err := io.WriteString(w, styles.FormatSummary(report.NewSummary(result, elapsed))); err != nil {
			return err
		}
	}

	if !result.Succeeded() {
		return ErrParseFailed
	}
	return nil
}

// reportError prints the diagnostics carried by `err`, if any
func reportError(w io.Writer, styles *report.Styles, err error) error {
	var derr *cl.DiagnosticsError
	if !errors.As(err, &derr) || derr.Source == nil {
		return err
	}
	for _, d := range derr.Diagnostics {
		if _, werr := io.WriteString(w, styles.FormatDiagnostic(derr.Source, d, "")); werr != nil {
			return werr
		}
	}
	return ErrParseFailed
}
