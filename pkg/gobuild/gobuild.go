// Package gobuild deals with creating a layer of Go binaries.
package gobuild

import (
	"context"
	"os"
	"time"

	"github.com/datawire/dlib/dexec"
	ociv1 "github.com/google/go-containerregistry/pkg/v1"
	ociv1tarball "github.com/google/go-containerregistry/pkg/v1/tarball"

	"github.com/putput/putput/pkg/dir"
)

// LayerFromGo compiles the named Go packages for linux/amd64 and returns a
// layer that installs the resulting binaries to /usr/local/bin.
func LayerFromGo(
	ctx context.Context,
	clampTime time.Time,
	pkgnames []string,
	opts ...ociv1tarball.LayerOption,
) (_ ociv1.Layer, err error) {
	maybeSetErr := func(_err error) {
		if _err != nil && err == nil {
			err = _err
		}
	}

	tmpdir, err := os.MkdirTemp("", "putput-gobuild.")
	if err != nil {
		return nil, err
	}
	defer func() {
		maybeSetErr(os.RemoveAll(tmpdir))
	}()

	args := append([]string{
		"go", "build",
		"-trimpath",
		"-o", tmpdir,
		"--",
	}, pkgnames...)
	cmd := dexec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stderr = os.Stderr
	cmd.Stdout = os.Stderr
	cmd.Env = append(os.Environ(),
		"CGO_ENABLED=0",
		"GOOS=linux",
		"GOARCH=amd64")

	if err := cmd.Run(); err != nil {
		return nil, err
	}

	return dir.LayerFromDir(tmpdir, "usr/local/bin", clampTime, opts...)
}
