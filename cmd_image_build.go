package main

import (
	"fmt"
	"os"

	"github.com/google/go-containerregistry/pkg/name"
	ociv1 "github.com/google/go-containerregistry/pkg/v1"
	"github.com/google/go-containerregistry/pkg/v1/empty"
	"github.com/google/go-containerregistry/pkg/v1/mutate"
	ociv1tarball "github.com/google/go-containerregistry/pkg/v1/tarball"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/putput/putput/pkg/cliutil"
	"github.com/putput/putput/pkg/dockerutil"
	"github.com/putput/putput/pkg/fsutil"
)

func init() {
	var (
		argBase   string
		argConfig string
		argDocker string
	)
	cmd := &cobra.Command{
		Use:   "build [flags] IN_LAYERFILES... >OUT_IMAGEFILE",
		Short: "Combine layers in to a complete image",
		Long: "Append the given layers to the base image (scratch, without --base) " +
			"and write the result to stdout as an image tarball." +
			"\n\n" +
			"The --config flag points at a YAML file that adjusts the runtime " +
			"config of the result:" +
			"\n\n" +
			"    entrypoint: [putput, smart-speaker]\n" +
			"    workingDir: /samples\n" +
			"    env: [PUTPUT_SEED=0]\n" +
			"    user: \"0:0\"\n" +
			"\n" +
			"Only the keys present are changed; everything else is inherited from " +
			"the base image.",
		Args: cliutil.WrapPositionalArgs(cobra.MinimumNArgs(1)),
		RunE: func(flags *cobra.Command, args []string) error {
			base := empty.Image
			if argBase != "" {
				var err error
				base, err = fsutil.OpenImage(argBase)
				if err != nil {
					return err
				}
			}

			layers := make([]ociv1.Layer, 0, len(args))
			for _, layerpath := range args {
				layer, err := fsutil.OpenLayer(layerpath)
				if err != nil {
					return err
				}
				layers = append(layers, layer)
			}

			img, err := mutate.AppendLayers(base, layers...)
			if err != nil {
				return err
			}

			if argConfig != "" {
				img, err = applyImageConfig(img, argConfig)
				if err != nil {
					return err
				}
			}

			if argDocker != "" {
				tag, err := name.NewTag(argDocker)
				if err != nil {
					return err
				}
				return dockerutil.Load(flags.Context(), tag, img)
			}
			return ociv1tarball.Write(nil, img, os.Stdout)
		},
	}
	cmd.Flags().StringVar(&argBase, "base", "", "Use `IN_IMAGEFILE` as the base of the image")
	cmd.Flags().StringVar(&argConfig, "config", "",
		"Read `IN_YAML_FILE` to adjust the image's runtime config")
	cmd.Flags().StringVar(&argDocker, "docker-load", "",
		"Instead of writing a tarball to stdout, load the image in to the "+
			"local Docker daemon as `TAG`")
	argparserImage.AddCommand(cmd)
}

func applyImageConfig(img ociv1.Image, filename string) (ociv1.Image, error) {
	yamlBytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var overlay struct {
		Entrypoint []string `json:"entrypoint,omitempty"`
		Cmd        []string `json:"cmd,omitempty"`
		WorkingDir string   `json:"workingDir,omitempty"`
		Env        []string `json:"env,omitempty"`
		User       string   `json:"user,omitempty"`
	}
	if err := yaml.Unmarshal(yamlBytes, &overlay, yaml.DisallowUnknownFields); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	cfgFile, err := img.ConfigFile()
	if err != nil {
		return nil, err
	}
	cfg := cfgFile.Config
	if overlay.Entrypoint != nil {
		cfg.Entrypoint = overlay.Entrypoint
		// A base image's Cmd is arguments to its own entrypoint; don't
		// leak it in to ours.
		cfg.Cmd = nil
	}
	if overlay.Cmd != nil {
		cfg.Cmd = overlay.Cmd
	}
	if overlay.WorkingDir != "" {
		cfg.WorkingDir = overlay.WorkingDir
	}
	if overlay.Env != nil {
		cfg.Env = append(cfg.Env, overlay.Env...)
	}
	if overlay.User != "" {
		cfg.User = overlay.User
	}
	return mutate.Config(img, cfg)
}
