package main

import (
	"bytes"
	"os"
	"path"

	"github.com/datawire/dlib/dlog"
	"github.com/spf13/cobra"

	"github.com/putput/putput/pkg/cliutil"
	"github.com/putput/putput/pkg/dataset"
	"github.com/putput/putput/pkg/fsutil"
	"github.com/putput/putput/pkg/patterndef"
	"github.com/putput/putput/pkg/pipeline"
	"github.com/putput/putput/pkg/reproducible"
)

func init() {
	var (
		argDynamic      []string
		argSampleConfig string
		argName         string
		argPrefix       string
		argWorkers      int
	)
	cmd := &cobra.Command{
		Use:   "dataset [flags] IN_PATTERNDEF.yml >OUT_LAYERFILE",
		Short: "Generate a dataset and wrap it as a layer",
		Long: "Run the same generation as `putput generate`, but emit an OCI layer " +
			"containing the JSON Lines dataset at PREFIX/NAME.jsonl, ready for " +
			"`putput image build`.",
		Args: cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(flags *cobra.Command, args []string) error {
			ctx := flags.Context()

			def, err := patterndef.Load(args[0])
			if err != nil {
				return err
			}
			dynamic, err := parseDynamicFlags(argDynamic)
			if err != nil {
				return err
			}
			popts := []pipeline.Option{
				pipeline.WithDynamicTokenPatterns(dynamic),
				pipeline.WithWorkers(argWorkers),
			}
			if argSampleConfig != "" {
				cfg, err := dataset.LoadConfig(argSampleConfig)
				if err != nil {
					return err
				}
				comboOpts, err := cfg.ComboOptions()
				if err != nil {
					return err
				}
				for key, opts := range comboOpts {
					popts = append(popts, pipeline.WithComboOptions(key, opts))
				}
			}

			var body bytes.Buffer
			writer := dataset.NewWriter(&body)
			if err := runPipeline(ctx, pipeline.New(def, popts...), writer.Write); err != nil {
				return err
			}
			dlog.Infof(ctx, "generated %d utterances", writer.Count())

			layer, err := fsutil.LayerFromFileReferences([]fsutil.FileReference{
				fsutil.NewMemFile(
					path.Join(argPrefix, argName+".jsonl"),
					0o644,
					reproducible.Now(),
					body.Bytes()),
			}, reproducible.Now())
			if err != nil {
				return err
			}
			return fsutil.WriteLayer(layer, os.Stdout)
		},
	}
	cmd.Flags().StringArrayVar(&argDynamic, "dynamic", nil,
		"Supply patterns for a dynamic token as `TOKEN=PHRASE[,PHRASE...]` (repeatable)")
	cmd.Flags().StringVar(&argSampleConfig, "sample-config", "",
		"Read `IN_YAML_FILE` for per-pattern sampling options")
	cmd.Flags().StringVar(&argName, "name", "dataset", "Dataset `NAME` within the layer")
	cmd.Flags().StringVar(&argPrefix, "prefix", "samples",
		"Directory `PREFIX` for the dataset within the layer")
	cmd.Flags().IntVar(&argWorkers, "workers", 1,
		"Generate utterance patterns on `N` goroutines; N > 1 interleaves patterns")
	argparserLayer.AddCommand(cmd)
}
