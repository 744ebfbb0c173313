package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/putput/putput/pkg/cliutil"
	"github.com/putput/putput/pkg/generate"
	"github.com/putput/putput/pkg/patterndef"
)

func init() {
	var argDynamic []string
	cmd := &cobra.Command{
		Use:   "expand [flags] IN_PATTERNDEF.yml",
		Short: "Show the expanded utterance patterns and their sizes",
		Long: "Expand a pattern definition without generating anything: unroll " +
			"range tokens, splice in groups, and report how many utterances each " +
			"resulting pattern can produce.  Useful for spotting patterns that " +
			"need sampling before a full `putput generate` run.",
		Args: cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(flags *cobra.Command, args []string) error {
			def, err := patterndef.Load(args[0])
			if err != nil {
				return err
			}
			dynamic, err := parseDynamicFlags(argDynamic)
			if err != nil {
				return err
			}
			expansions, err := generate.Expand(def, dynamic)
			if err != nil {
				return err
			}

			total := uint64(0)
			for _, exp := range expansions {
				groups := make([]string, len(exp.Groups))
				for i, group := range exp.Groups {
					groups[i] = fmt.Sprintf("%s(%d)", group.Name, group.TokenCount)
				}
				flags.Printf("pattern: %s\n", strings.Join(exp.Tokens, " "))
				flags.Printf("  groups: %s\n", strings.Join(groups, " "))
				flags.Printf("  combinations: %d\n", exp.Size())
				total += exp.Size()
			}
			flags.Printf("%d patterns, %d combinations\n", len(expansions), total)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&argDynamic, "dynamic", nil,
		"Supply patterns for a dynamic token as `TOKEN=PHRASE[,PHRASE...]` (repeatable)")
	argparser.AddCommand(cmd)
}
