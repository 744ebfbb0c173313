package main

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/datawire/dlib/dlog"
	"github.com/spf13/cobra"

	"github.com/putput/putput/pkg/cliutil"
	"github.com/putput/putput/pkg/combo"
	"github.com/putput/putput/pkg/patterndef"
	"github.com/putput/putput/pkg/pipeline"
	"github.com/putput/putput/pkg/preset/iob2"
)

//go:embed samples/smart_speaker/pattern_def.yml
var smartSpeakerDef []byte

func init() {
	var (
		argSample int64
		argSeed   int64
		argIOB2   bool
	)
	cmd := &cobra.Command{
		Use:   "smart-speaker [flags]",
		Short: "Generate utterances for the built-in smart-speaker demo",
		Long: "Run generation over the embedded smart-speaker pattern definition " +
			"(wake words, play-artist/play-song intents, volume control), with " +
			"artist and song names supplied as dynamic tokens.  This is what a " +
			"bare `putput` invocation runs.",
		Args: cliutil.WrapPositionalArgs(cobra.NoArgs),
		RunE: func(flags *cobra.Command, args []string) error {
			ctx := flags.Context()

			def, err := patterndef.Parse(smartSpeakerDef)
			if err != nil {
				return err
			}

			dynamic := map[string][]patterndef.TokenPattern{
				"ARTIST": {
					{{Phrases: []string{"the beatles", "the rolling stones", "kanye west"}}},
				},
				"SONG": {
					{{Phrases: []string{"hey jude", "paint it black", "bohemian rhapsody"}}},
				},
			}

			popts := []pipeline.Option{
				pipeline.WithDynamicTokenPatterns(dynamic),
			}
			if argSample > 0 {
				popts = append(popts, pipeline.WithComboOptions(pipeline.DefaultKey, &combo.Options{
					MaxSampleSize: int(argSample),
					Seed:          argSeed,
				}))
			}
			if argIOB2 {
				popts = append(popts, iob2.Options()...)
			}

			out := flags.OutOrStdout()
			count := 0
			err = runPipeline(ctx, pipeline.New(def, popts...), func(res pipeline.Result) error {
				count++
				fmt.Fprintln(out, res.Utterance)
				fmt.Fprintf(out, "  tokens: %s\n", strings.Join(res.Tokens, " "))
				if argIOB2 {
					fmt.Fprintf(out, "  groups: %s\n", strings.Join(res.GroupTags, " "))
				}
				return nil
			})
			if err != nil {
				return err
			}
			dlog.Infof(ctx, "generated %d utterances", count)
			return nil
		},
	}
	cmd.Flags().Int64Var(&argSample, "sample", 10,
		"Sample `N` utterances per pattern; 0 generates everything")
	cmd.Flags().Int64Var(&argSeed, "seed", 0, "Random `SEED` for --sample")
	cmd.Flags().BoolVar(&argIOB2, "iob2", false, "Label with IOB2 tags instead of [TOKEN(phrase)]")
	argparser.AddCommand(cmd)
}
