// Package discover drives call-site discovery over a whole build: it lowers
// function bodies to fixed-node graphs, walks each graph in dominator order
// and follows resolved callees transitively from the entry function.
package discover

import (
	"fmt"
	"io"
	"io/ioutil"
	"log"

	"github.com/pkg/errors"
	gossa "golang.org/x/tools/go/ssa"

	"github.com/nickng/callwalk/lower"
	"github.com/nickng/callwalk/ssa"
	"github.com/nickng/callwalk/walk"
)

// CallSite is one discovered call site.
type CallSite struct {
	Caller *gossa.Function // Enclosing function.
	Callee *gossa.Function // Resolved target.
	Pos    string          // Source position of the call.
}

// Discoverer is the call-site discovery entry point.
type Discoverer struct {
	Info      *ssa.Info // SSA IR.
	EntryFunc string    // Entry function path; main.main if empty.

	Calls []CallSite // Discovered call sites, in discovery order.

	outWriter io.Writer // Output stream.
	errWriter io.Writer // Trace stream for lower/walk.
	*Logger
}

// New returns a new Discoverer, and uses w for trace messages.
func New(info *ssa.Info, w io.Writer) *Discoverer {
	d := Discoverer{
		Info:      info,
		outWriter: ioutil.Discard,
		errWriter: ioutil.Discard,
		Logger:    newLogger(),
	}
	if w != nil {
		d.errWriter = w
	}
	return &d
}

// SetEntryFunc sets the function discovery starts from.
func (d *Discoverer) SetEntryFunc(path string) {
	d.EntryFunc = path
}

// SetOutput sets the writer the call-site report is written to.
func (d *Discoverer) SetOutput(w io.Writer) {
	if w != nil {
		d.outWriter = w
	}
}

// AddLogFiles extends current Logger and writes additional log to files.
func (d *Discoverer) AddLogFiles(file ...string) {
	d.Logger = newFileLogger(file...)
}

// Analyse discovers call sites starting from the entry function, following
// resolved callees until no new function is reachable. Each function body
// is lowered and walked exactly once.
func (d *Discoverer) Analyse() {
	// Sync error ignored. See https://github.com/uber-go/zap/issues/328
	defer d.Logger.Sync()

	roots, err := d.roots()
	if err != nil {
		log.Fatal("Cannot find entry function:", err)
	}

	seen := make(map[*gossa.Function]bool)
	queue := append([]*gossa.Function(nil), roots...)
	for _, fn := range queue {
		seen[fn] = true
	}
	for len(queue) > 0 {
		fn := queue[0]
		queue = queue[1:]
		for _, callee := range d.analyseFunc(fn) {
			if !seen[callee] {
				seen[callee] = true
				queue = append(queue, callee)
			}
		}
	}
}

// analyseFunc lowers and walks one function body, reporting its call sites
// and returning the resolved callees in discovery order.
func (d *Discoverer) analyseFunc(fn *gossa.Function) []*gossa.Function {
	d.Logger.Debugf("%s Analyse %s", d.Logger.Module(), fn.String())
	res, err := lower.FunctionLog(fn, d.errWriter)
	if err != nil {
		if errors.Cause(err) == lower.ErrNoBody {
			d.Logger.Debugf("%s Skip %s: no body", d.Logger.Module(), fn.String())
			return nil
		}
		log.Fatalf("Cannot lower %s: %v", fn.String(), err)
	}

	walker := walk.New(res.Graph)
	walker.SetLog(d.errWriter)

	var callees []*gossa.Function
	for _, id := range walker.Apply() {
		target := res.Graph.Target(id)
		callee := res.Callees[id]
		site := CallSite{
			Caller: fn,
			Callee: callee,
			Pos:    d.Info.FSet.Position(target.Pos).String(),
		}
		d.Calls = append(d.Calls, site)
		fmt.Fprintf(d.outWriter, "%s: %s calls %s\n", site.Pos, fn.String(), target.Name)
		callees = append(callees, callee)
	}
	return callees
}

// roots returns the functions discovery starts from: the named entry
// function if set, otherwise main.main of every main package.
func (d *Discoverer) roots() ([]*gossa.Function, error) {
	if d.EntryFunc != "" {
		fn, err := d.Info.FindFunc(d.EntryFunc)
		if err != nil {
			return nil, err
		}
		if fn == nil {
			return nil, errors.Errorf("function %s not found", d.EntryFunc)
		}
		return []*gossa.Function{fn}, nil
	}
	mains, err := ssa.MainPkgs(d.Info.Prog, false)
	if err != nil {
		return nil, err
	}
	var roots []*gossa.Function
	for _, main := range mains {
		if mainFn := main.Func("main"); mainFn != nil {
			roots = append(roots, mainFn)
		}
	}
	return roots, nil
}
