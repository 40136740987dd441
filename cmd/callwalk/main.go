// Command callwalk is the command line entry point to call-site discovery.
package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"github.com/nickng/callwalk/discover"
	"github.com/nickng/callwalk/ssa/build"
)

const (
	Usage = `callwalk is a tool for discovering call sites in Go source code in
dominator-respecting control-flow order.

Usage:

  callwalk [options] file.go [files.go...]

Options:

`
)

var (
	logPath   string
	entryFunc string
	logFile   string
	logWriter = ioutil.Discard
)

func init() {
	flag.StringVar(&logPath, "log", "", "Specify analysis log file (use '-' for stderr)")
	flag.StringVar(&entryFunc, "func", "", `Specify the entry function (format: (import/path).FuncName, default: main.main)`)
}

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, Usage)
		flag.PrintDefaults()
		os.Exit(0)
	}

	conf := build.FromFiles(flag.Args()).Default()
	switch logPath {
	case "":
	case "-":
		logWriter = os.Stderr
		conf = conf.WithBuildLog(logWriter, log.LstdFlags)
	default:
		f, err := os.Create(logPath)
		if err != nil {
			log.Fatalf("Cannot create log %s: %v", logPath, err)
		}
		defer f.Close()
		conf = conf.WithBuildLog(f, log.LstdFlags)
		logWriter = f
		logFile = f.Name()
	}
	info, err := conf.Build()
	if err != nil {
		log.Fatal("Build failed:", err)
	}
	d := discover.New(info, logWriter)
	if logFile != "" {
		d.AddLogFiles(logFile)
	}
	if entryFunc != "" {
		d.SetEntryFunc(entryFunc)
	}
	d.SetOutput(os.Stdout)
	d.Analyse()
}
