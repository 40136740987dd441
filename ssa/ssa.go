// Package ssa is a library to build and work with SSA.
// For most part the package contains helper or wrapper functions to use the
// packages in Go project's extra tools.
//
// In particular, the SSA IR is from golang.org/x/tools/go/ssa; the function
// bodies built here are the input of the lower and discover packages.
//
package ssa

import (
	"errors"
	"go/token"
	"io"
	"log"

	"golang.org/x/tools/go/loader"
	"golang.org/x/tools/go/ssa"
)

var (
	ErrNoMainPkgs     = errors.New("ssa: no main package found")
	ErrNoTestMainPkgs = errors.New("ssa: no test main package found")
)

// Info holds the results of a SSA build for analysis.
// To populate this structure, the 'build' subpackage should be used.
//
type Info struct {
	IgnoredPkgs []string // Record of ignored package during the build process.

	FSet  *token.FileSet  // FileSet for parsed source files.
	Prog  *ssa.Program    // SSA IR for whole program.
	LProg *loader.Program // Loaded program from go/loader.

	BldLog io.Writer // Build log.

	Logger *log.Logger // Build logger.
}
