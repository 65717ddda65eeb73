// Copyright (C) 2024-2026  Descware
//
// SPDX-License-Identifier: Apache-2.0

// Package python deals with the Python runtime that descriptor evaluation
// delegates to.
package python

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/datawire/dlib/dexec"
	"github.com/datawire/dlib/dlog"
)

// A Runtime is a resolved Python interpreter.  It is an injected dependency:
// resolved once per build invocation (not looked up from ambient state at
// point-of-use), and discarded after.
type Runtime struct {
	argv []string
}

// NewRuntime resolves an interpreter command line.  The executable is looked
// up in PATH and pinned to an absolute path, so later invocations aren't
// affected by PATH or working-directory changes.
func NewRuntime(cmdline ...string) (*Runtime, error) {
	if len(cmdline) == 0 {
		return nil, fmt.Errorf("python.NewRuntime: empty command line")
	}
	exe, err := dexec.LookPath(cmdline[0])
	if err != nil {
		return nil, err
	}
	exe, err = filepath.Abs(exe)
	if err != nil {
		return nil, err
	}
	argv := append([]string{exe}, cmdline[1:]...)
	return &Runtime{argv: argv}, nil
}

// DefaultRuntime resolves the environment's default Python 3 interpreter.
func DefaultRuntime() (*Runtime, error) {
	return NewRuntime("python3")
}

// String returns the interpreter executable path.
func (rt *Runtime) String() string {
	return rt.argv[0]
}

// Module names are dotted identifiers; anything else is rejected before it
// gets near the interpreter command line.
var reModuleName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// CheckImport verifies that the named module is importable: a post-install
// sanity check.  Failure signals a packaging defect (missing file, broken
// entry point, or environment mismatch).
func (rt *Runtime) CheckImport(ctx context.Context, module string) error {
	if !reModuleName.MatchString(module) {
		return fmt.Errorf("python: invalid module name: %q", module)
	}
	cmd := dexec.CommandContext(ctx, rt.argv[0], append(rt.argv[1:], "-c", "import "+module)...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("python: import check failed for module %q: %w", module, err)
	}
	return nil
}

// CheckImports runs CheckImport for each module, failing on the first error.
func (rt *Runtime) CheckImports(ctx context.Context, modules []string) error {
	for _, module := range modules {
		dlog.Infof(ctx, "import check: %s", module)
		if err := rt.CheckImport(ctx, module); err != nil {
			return err
		}
	}
	return nil
}
