// Copyright (C) 2026  The putput Authors
//
// SPDX-License-Identifier: Apache-2.0

package generate

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/datawire/dlib/dexec"
)

// ExecHandler returns a Handler that runs an external command for each
// (token, phrase) pair, for callers that can't supply a handler in Go.  The
// token is passed in the PUTPUT_TOKEN environment variable and the phrase on
// stdin; the command's stdout, with a single trailing newline removed, is the
// handled token.
func ExecHandler(ctx context.Context, cmdline ...string) (Handler, error) {
	if len(cmdline) == 0 {
		return nil, fmt.Errorf("generate: ExecHandler: empty command line")
	}
	exe, err := dexec.LookPath(cmdline[0])
	if err != nil {
		return nil, err
	}
	return func(token, phrase string) (string, error) {
		cmd := dexec.CommandContext(ctx, exe, cmdline[1:]...)
		cmd.Env = append(os.Environ(), "PUTPUT_TOKEN="+token)
		cmd.Stdin = strings.NewReader(phrase)
		out, err := cmd.Output()
		if err != nil {
			return "", fmt.Errorf("generate: handler %q: token %q: %w", cmdline[0], token, err)
		}
		return strings.TrimSuffix(string(out), "\n"), nil
	}, nil
}
