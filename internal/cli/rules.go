package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/commonlexer/commonlexer/internal/logging"
)

type rulesFlags struct {
	grammar string
}

func newRulesCommand(opts *globalOptions) *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the rules of a grammar",
		Long: `List the rules of a grammar with their ids and kinds, in the order they
were declared. Without --grammar it lists the rules of the grammar file
format itself.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRules(cmd.Context(), cmd.OutOrStdout(), opts, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.grammar, "grammar", "g", "", "grammar file to list the rules of")

	return cmd
}

func runRules(ctx context.Context, w io.Writer, opts *globalOptions, flags *rulesFlags) error {
	engine, err := opts.engine(logging.FromContext(ctx), flags.grammar)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tKIND")
	for _, rule := range engine.Rules() {
		kind := "node"
		switch {
		case rule.IsCallback():
			kind = "callback"
		case !rule.CreatesNode():
			kind = "nodeless"
		}
		marker := ""
		if rule.Name() == engine.StartRule() {
			marker = " (start)"
		}
		fmt.Fprintf(tw, "%d\t%s%s\t%s\n", rule.ID(), rule.Name(), marker, kind)
	}
	return tw.Flush()
}
