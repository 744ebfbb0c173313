package main

import (
	"github.com/spf13/cobra"

	"github.com/putput/putput/pkg/cliutil"
)

var argparserLayer = &cobra.Command{
	Use:   "layer {[flags]|SUBCOMMAND...}",
	Short: "Create OCI layers from generated output",

	Args: cliutil.OnlySubcommands,
	RunE: cliutil.RunSubcommands,
}

func init() {
	argparser.AddCommand(argparserLayer)
}
