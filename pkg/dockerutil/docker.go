package dockerutil

import (
	"context"

	"github.com/datawire/dlib/dexec"
	"github.com/google/go-containerregistry/pkg/name"
	ociv1 "github.com/google/go-containerregistry/pkg/v1"
	ociv1tarball "github.com/google/go-containerregistry/pkg/v1/tarball"
)

// Load feeds img to `docker image load` under the given tag, so that the image
// can be run locally without going through a registry.
func Load(ctx context.Context, tag name.Tag, img ociv1.Image) error {
	cmd := dexec.CommandContext(ctx, "docker", "image", "load")
	pipe, err := cmd.StdinPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	defer func() {
		_ = pipe.Close()
		_ = cmd.Wait()
	}()
	if err := ociv1tarball.Write(tag, img, pipe); err != nil {
		return err
	}
	if err := pipe.Close(); err != nil {
		return err
	}
	return cmd.Wait()
}
