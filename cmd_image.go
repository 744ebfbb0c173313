package main

import (
	"github.com/spf13/cobra"

	"github.com/putput/putput/pkg/cliutil"
)

var argparserImage = &cobra.Command{
	Use:   "image {[flags]|SUBCOMMAND...}",
	Short: "Combine layers in to runnable images",

	Args: cliutil.OnlySubcommands,
	RunE: cliutil.RunSubcommands,
}

func init() {
	argparser.AddCommand(argparserImage)
}
