package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/datawire/dlib/dlog"
	"github.com/spf13/cobra"

	"github.com/putput/putput/pkg/cliutil"
	"github.com/putput/putput/pkg/dataset"
	"github.com/putput/putput/pkg/generate"
	"github.com/putput/putput/pkg/patterndef"
	"github.com/putput/putput/pkg/pipeline"
	"github.com/putput/putput/pkg/preset/iob2"
)

func init() {
	var (
		argDynamic      []string
		argSampleConfig string
		argPreset       string
		argHandlerExec  string
		argWorkers      int
	)
	cmd := &cobra.Command{
		Use:   "generate [flags] IN_PATTERNDEF.yml >OUT_JSONL",
		Short: "Generate utterances as JSON Lines",
		Long: "Generate every utterance the pattern definition describes (or a " +
			"sample of them, see --sample-config) and write them to stdout as JSON " +
			"Lines: one {\"utterance\", \"tokens\", \"groups\"} object per line." +
			"\n\n" +
			"Tokens are labeled with the default \"[TOKEN(phrase)]\" handler unless " +
			"--preset or --handler-exec says otherwise.",
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
			switch {
			case argPreset != "" && argHandlerExec != "":
				return fmt.Errorf("--preset and --handler-exec are mutually exclusive")
			case argPreset == "iob2":
				popts = append(popts, iob2.Options()...)
			case argPreset != "":
				return fmt.Errorf("unknown preset %q", argPreset)
			case argHandlerExec != "":
				handler, err := generate.ExecHandler(ctx, strings.Fields(argHandlerExec)...)
				if err != nil {
					return err
				}
				popts = append(popts, pipeline.WithTokenHandlers(generate.HandlerMap{
					generate.DefaultKey: handler,
				}))
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

			writer := dataset.NewWriter(os.Stdout)
			if err := runPipeline(ctx, pipeline.New(def, popts...), writer.Write); err != nil {
				return err
			}
			dlog.Infof(ctx, "wrote %d utterances", writer.Count())
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&argDynamic, "dynamic", nil,
		"Supply patterns for a dynamic token as `TOKEN=PHRASE[,PHRASE...]` (repeatable)")
	cmd.Flags().StringVar(&argSampleConfig, "sample-config", "",
		"Read `IN_YAML_FILE` for per-pattern sampling options")
	cmd.Flags().StringVar(&argPreset, "preset", "",
		"Relabel tokens with a preset; the only preset is \"iob2\"")
	cmd.Flags().StringVar(&argHandlerExec, "handler-exec", "",
		"Label tokens by running `COMMAND` per (token, phrase) pair; the token is "+
			"passed in $PUTPUT_TOKEN and the phrase on stdin (no shell quoting)")
	cmd.Flags().IntVar(&argWorkers, "workers", 1,
		"Generate utterance patterns on `N` goroutines; N > 1 interleaves patterns")
	argparser.AddCommand(cmd)
}
