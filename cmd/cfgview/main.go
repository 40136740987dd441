// Command cfgview prints the fixed-node control-flow graph of a function in
// graphviz dot format.
//
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/nickng/callwalk/lower"
	"github.com/nickng/callwalk/ssa/build"
)

const (
	Usage = `cfgview is a tool for printing the fixed-node CFG of a Go function.

Usage:

  cfgview [options] file.go [files.go...]

Options:

`
)

var (
	buildlogPath string
	outPath      string
	viewFunc     string

	out io.Writer
)

const mainMain = "main.main"

func init() {
	flag.StringVar(&buildlogPath, "log", "", "Specify build log file (use '-' for stdout)")
	flag.StringVar(&outPath, "out", "", "Specify output file (default: stdout)")
	flag.StringVar(&viewFunc, "func", mainMain, `Specify the function to view (format: (import/path).FuncName`)
}

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, Usage)
		flag.PrintDefaults()
		os.Exit(0)
	}

	conf := build.FromFiles(flag.Args()).Default()
	switch buildlogPath {
	case "":
	case "-":
		conf = conf.WithBuildLog(os.Stdout, log.LstdFlags)
	default:
		f, err := os.Create(buildlogPath)
		if err != nil {
			log.Fatalf("Cannot create log %s: %v", buildlogPath, err)
		}
		defer f.Close()
		conf = conf.WithBuildLog(f, log.LstdFlags)
	}

	switch outPath {
	case "":
		out = os.Stdout
	default:
		f, err := os.Create(outPath)
		if err != nil {
			log.Fatalf("Cannot create output file %s: %v", outPath, err)
		}
		defer f.Close()
		out = f
	}

	info, err := conf.Build()
	if err != nil {
		log.Fatal("Cannot build SSA from files:", err)
	}
	fn, err := info.FindFunc(viewFunc)
	if err != nil {
		log.Fatalf("Cannot find function %s: %v", viewFunc, err)
	}
	if fn == nil {
		log.Fatalf("Function %s not found", viewFunc)
	}
	res, err := lower.Function(fn)
	if err != nil {
		log.Fatalf("Cannot lower %s: %v", viewFunc, err)
	}
	if err := res.Graph.WriteGraphviz(out); err != nil {
		log.Fatal("Cannot write graph:", err)
	}
}
