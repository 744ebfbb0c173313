package main

import (
	"github.com/spf13/cobra"

	"github.com/putput/putput/pkg/cliutil"
	"github.com/putput/putput/pkg/patterndef"
)

func init() {
	cmd := &cobra.Command{
		Use:   "validate IN_PATTERNDEF.yml",
		Short: "Check that a pattern definition is well-formed",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(flags *cobra.Command, args []string) error {
			def, err := patterndef.Load(args[0])
			if err != nil {
				return err
			}
			if err := def.Validate(); err != nil {
				return err
			}
			flags.Printf("%s: OK: %d static tokens, %d dynamic tokens, %d groups, %d utterance patterns\n",
				args[0], len(def.Static), len(def.Dynamic), len(def.Groups), len(def.UtterancePatterns))
			return nil
		},
	}
	argparser.AddCommand(cmd)
}
