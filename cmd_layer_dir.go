package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/putput/putput/pkg/cliutil"
	"github.com/putput/putput/pkg/dir"
	"github.com/putput/putput/pkg/fsutil"
	"github.com/putput/putput/pkg/reproducible"
)

func init() {
	var argPrefix string
	cmd := &cobra.Command{
		Use:   "dir [flags] IN_DIRNAME >OUT_LAYERFILE",
		Short: "Create a layer from a directory",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(flags *cobra.Command, args []string) error {
			layer, err := dir.LayerFromDir(args[0], argPrefix, reproducible.Now())
			if err != nil {
				return err
			}
			return fsutil.WriteLayer(layer, os.Stdout)
		},
	}
	cmd.Flags().StringVar(&argPrefix, "add-prefix", "",
		"Add a `PREFIX` to the filenames in the layer; forward-slash separated, "+
			"absolute but NOT starting with a slash, e.g. \"samples\"")
	argparserLayer.AddCommand(cmd)
}
