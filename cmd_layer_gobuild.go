package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/putput/putput/pkg/cliutil"
	"github.com/putput/putput/pkg/fsutil"
	"github.com/putput/putput/pkg/gobuild"
	"github.com/putput/putput/pkg/reproducible"
)

func init() {
	cmd := &cobra.Command{
		Use:   "gobuild [flags] PACKAGES... >OUT_LAYERFILE",
		Short: "Create a layer of Go binaries",
		Long: "Works more or less like `go build`.  Passes through env-vars (except for " +
			"CGO_ENABLED, GOOS, and GOARCH; those are pinned to reflect the target " +
			"layer).  Use GOFLAGS to pass in extra flags." +
			"\n\n" +
			"Use this to stage the putput binary itself in to an image:" +
			"\n\n" +
			"    putput layer gobuild . >bin.layer.tar",
		Args: cliutil.WrapPositionalArgs(cobra.MinimumNArgs(1)),
		RunE: func(flags *cobra.Command, args []string) error {
			layer, err := gobuild.LayerFromGo(flags.Context(), reproducible.Now(), args)
			if err != nil {
				return err
			}
			return fsutil.WriteLayer(layer, os.Stdout)
		},
	}
	argparserLayer.AddCommand(cmd)
}
