package ssa

import (
	"regexp"
	"strings"

	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"
)

// FindFunc parses path (e.g. "github.com/nickng/callwalk/ssa".MainPkgs) and
// returns the Function body in SSA IR, or nil if no function matches.
func (info *Info) FindFunc(path string) (*ssa.Function, error) {
	pkgPath, fnName := parseFuncPath(path)
	for fn := range ssautil.AllFunctions(info.Prog) {
		if fn.Pkg == nil {
			continue
		}
		// Ad hoc packages (e.g. built from a reader) have an empty import
		// path, so match the package name as well.
		if (fn.Pkg.Pkg.Path() == pkgPath || fn.Pkg.Pkg.Name() == pkgPath) && fn.Name() == fnName {
			return fn, nil
		}
	}
	return nil, nil
}

// parseFuncPath splits path to package and function segments.
// Does not handle complex functions with receivers.
func parseFuncPath(path string) (pkgPath, fnName string) {
	if len(path) < 1 {
		return "", ""
	}
	switch path[0] {
	case '(':
		regex := regexp.MustCompile(`\((?P<pkg>[^)]+)\).(?P<fn>.+)`)
		submatches := regex.FindStringSubmatch(path)
		if len(submatches) >= 3 {
			return submatches[1], submatches[2]
		}
	case '"':
		regex := regexp.MustCompile(`"(?P<pkg>[^)]+)".(?P<fn>.+)`)
		submatches := regex.FindStringSubmatch(path)
		if len(submatches) >= 3 {
			return submatches[1], submatches[2]
		}
	default:
		parts := strings.Split(path, ".")
		if len(parts) >= 2 {
			return parts[0], parts[1]
		}
	}
	return "", path
}
