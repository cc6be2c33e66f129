// Package validator checks a lowered Program for declaration-level
// problems the lowerer itself has no way to detect: missing POUs,
// duplicate names, and incomplete declarations. It never mutates the
// AST it is given.
package validator

import (
	"sort"

	"github.com/hyperdrive-technology/core-sub001/internal/ast"
	"github.com/hyperdrive-technology/core-sub001/internal/diagnostics"
	"github.com/hyperdrive-technology/core-sub001/internal/token"
)

// Validate runs every declaration-level check against prog and returns
// the accumulated diagnostics.
func Validate(prog *ast.Program) *diagnostics.Bag {
	diags := diagnostics.NewBag()
	v := &validator{diags: diags}
	v.checkHasPOUs(prog)
	v.checkDuplicatePOUNames(prog)
	v.checkDuplicateTypeNames(prog)
	v.checkFunctionReturnTypes(prog)
	return diags
}

type validator struct {
	diags *diagnostics.Bag
}

func (v *validator) checkHasPOUs(prog *ast.Program) {
	if len(prog.Functions) == 0 && len(prog.FunctionBlocks) == 0 && len(prog.Programs) == 0 {
		v.diags.Errorf(diagnostics.Validate, prog.Range, "file declares no PROGRAM, FUNCTION, or FUNCTION_BLOCK")
	}
}

// checkDuplicatePOUNames rejects a second declaration of a POU name
// regardless of which of the three POU kinds it repeats under, since
// all three share one namespace at the file scope. Walking the POUs in
// declaration order means the first occurrence of a name is
// treated as authoritative and every later one is flagged.
func (v *validator) checkDuplicatePOUNames(prog *ast.Program) {
	type pou struct {
		name string
		rng  token.Range
	}
	var pous []pou
	for _, fn := range prog.Functions {
		pous = append(pous, pou{fn.Name, fn.Range})
	}
	for _, fb := range prog.FunctionBlocks {
		pous = append(pous, pou{fb.Name, fb.Range})
	}
	for _, pd := range prog.Programs {
		pous = append(pous, pou{pd.Name, pd.Range})
	}
	sort.SliceStable(pous, func(i, j int) bool { return pous[i].rng.Start.Offset < pous[j].rng.Start.Offset })
	seen := map[string]struct{}{}
	for _, p := range pous {
		v.recordPOUName(seen, p.name, p.rng)
	}
}

func (v *validator) recordPOUName(seen map[string]struct{}, name string, rng token.Range) {
	if name == "" {
		return
	}
	if _, dup := seen[name]; dup {
		v.diags.Errorf(diagnostics.Validate, rng, "%q is already declared as a PROGRAM, FUNCTION, or FUNCTION_BLOCK", name)
		return
	}
	seen[name] = struct{}{}
}

func (v *validator) checkDuplicateTypeNames(prog *ast.Program) {
	seen := map[string]struct{}{}
	for _, s := range prog.Structs {
		if _, dup := seen[s.Name]; dup {
			v.diags.Errorf(diagnostics.Validate, s.Range, "type %q is declared more than once", s.Name)
			continue
		}
		seen[s.Name] = struct{}{}
	}
	for _, e := range prog.Enums {
		if _, dup := seen[e.Name]; dup {
			v.diags.Errorf(diagnostics.Validate, e.Range, "type %q is declared more than once", e.Name)
			continue
		}
		seen[e.Name] = struct{}{}
	}
}

func (v *validator) checkFunctionReturnTypes(prog *ast.Program) {
	for _, fn := range prog.Functions {
		if fn.ReturnType == nil {
			v.diags.Errorf(diagnostics.Validate, fn.Range, "function %q has no declared return type", fn.Name)
		}
	}
}
