package ssa_test

import (
	"strings"
	"testing"

	"github.com/nickng/callwalk/ssa"
	"github.com/nickng/callwalk/ssa/build"
)

// This tests basic build.
func TestBuild(t *testing.T) {
	s := `package main
	import "fmt"
	func main() {
		fmt.Println("Hello World")
	}`

	conf := build.FromReader(strings.NewReader(s))
	info, err := conf.Build()
	if err != nil {
		t.Errorf("SSA build failed: %v", err)
	}
	if info.Prog == nil {
		t.Errorf("SSA Program missing")
	}
	mains, err := ssa.MainPkgs(info.Prog, false)
	if err != nil {
		t.Errorf("cannot find main packages: %v", err)
	}
	for _, main := range mains {
		if main.Func("main") == nil {
			t.Error("expects main.main() but not found")
		}
	}
}

// This tests building with non-main package.
func TestBuildNonMainPkg(t *testing.T) {
	s := `package pkg
	import "fmt"
	func main() {
		fmt.Println("Hello World")
	}`

	conf := build.FromReader(strings.NewReader(s))
	info, err := conf.Build()
	if err != nil {
		t.Errorf("SSA build failed: %v", err)
	}
	if _, err = ssa.MainPkgs(info.Prog, false); err != ssa.ErrNoMainPkgs {
		t.Errorf("unexpected main package")
	}
}

// This tests function lookup by path.
func TestFindFunc(t *testing.T) {
	s := `package main
	func foo() {}
	func main() {
		foo()
	}`

	conf := build.FromReader(strings.NewReader(s))
	info, err := conf.Build()
	if err != nil {
		t.Errorf("SSA build failed: %v", err)
	}
	fn, err := info.FindFunc("main.foo")
	if err != nil {
		t.Errorf("FindFunc failed: %v", err)
	}
	if fn == nil || fn.Name() != "foo" {
		t.Errorf("expects main.foo, got %v", fn)
	}
	missing, err := info.FindFunc("main.nonexistent")
	if err != nil {
		t.Errorf("FindFunc failed: %v", err)
	}
	if missing != nil {
		t.Errorf("expects no function, got %v", missing)
	}
}
