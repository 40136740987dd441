package lower

import (
	"go/types"

	"github.com/nickng/callwalk/graph"
	"golang.org/x/tools/go/ssa"
)

// resolveTarget resolves the callee of a call instruction to a concrete
// call descriptor. Calls whose callee cannot be pinned to one function with
// a body (indirect calls through variables, builtins, interface calls on
// abstract receivers) resolve to nil: such call sites are walked but never
// collected.
func resolveTarget(prog *ssa.Program, common *ssa.CallCommon) (*graph.CallTarget, *ssa.Function) {
	var callee *ssa.Function
	if common.IsInvoke() {
		callee = lookupInvoke(prog, common)
	} else {
		callee = common.StaticCallee()
	}
	if callee == nil || len(callee.Blocks) == 0 {
		return nil, nil
	}
	return &graph.CallTarget{Name: callee.String(), Pos: common.Pos()}, callee
}

// lookupInvoke resolves an interface method call by chasing the receiver
// back to a value of concrete type.
func lookupInvoke(prog *ssa.Program, common *ssa.CallCommon) *ssa.Function {
	recv := concreteRecv(common.Value)
	if recv == nil {
		return nil
	}
	if _, abstract := recv.Type().Underlying().(*types.Interface); abstract {
		return nil
	}
	mset := types.NewMethodSet(recv.Type())
	if mset.Lookup(common.Method.Pkg(), common.Method.Name()) == nil {
		return nil
	}
	return prog.LookupMethod(recv.Type(), common.Method.Pkg(), common.Method.Name())
}

// concreteRecv unwraps an interface value to the value with the most
// concrete type, or nil if the receiver stays abstract.
func concreteRecv(v ssa.Value) ssa.Value {
	switch instr := v.(type) {
	case *ssa.MakeInterface:
		return instr.X
	case *ssa.ChangeInterface:
		return concreteRecv(instr.X)
	case *ssa.TypeAssert:
		return concreteRecv(instr.X)
	}
	return nil
}
