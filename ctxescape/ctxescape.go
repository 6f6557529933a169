// Package ctxescape defines an Analyzer that reports generator contexts
// escaping the generator body they belong to.
//
// A *genstream.Context is only meaningful while its own generator is being
// resumed by a poll. Code that stores one in longer-lived state, sends it to
// another goroutine, or returns it lets the context be used outside an
// active resume, which panics at run time at best and deadlocks the stream
// at worst. The analyzer reports the constructs that let a context leave its
// body:
//
//   - assignment to a package variable, struct field, or map or slice element
//   - inclusion in a composite literal
//   - send on a channel
//   - return from a function
//   - hand-off to a new goroutine, by argument or by capture
//
// Passing a context to an ordinary function call is not reported: helpers
// like genstream.Await receive the context as an argument and run within the
// same resume.
package ctxescape

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// contextPackage is the import path of the package declaring Context.
const contextPackage = "github.com/stealthrocket/genstream"

var Analyzer = &analysis.Analyzer{
	Name:     "ctxescape",
	Doc:      "report generator contexts escaping their generator body",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

func run(pass *analysis.Pass) (any, error) {
	in := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.AssignStmt)(nil),
		(*ast.CompositeLit)(nil),
		(*ast.GoStmt)(nil),
		(*ast.ReturnStmt)(nil),
		(*ast.SendStmt)(nil),
	}

	in.Preorder(nodeFilter, func(n ast.Node) {
		switch n := n.(type) {
		case *ast.AssignStmt:
			assign(pass, n)
		case *ast.CompositeLit:
			composite(pass, n)
		case *ast.GoStmt:
			gostmt(pass, n)
		case *ast.ReturnStmt:
			for _, res := range n.Results {
				if isContext(pass, res) {
					pass.Reportf(res.Pos(), "generator context returned from a function")
				}
			}
		case *ast.SendStmt:
			if isContext(pass, n.Value) {
				pass.Reportf(n.Value.Pos(), "generator context sent on a channel")
			}
		}
	})
	return nil, nil
}

func assign(pass *analysis.Pass, n *ast.AssignStmt) {
	for i, lhs := range n.Lhs {
		escaping := isContext(pass, lhs)
		if !escaping && len(n.Rhs) == len(n.Lhs) {
			escaping = isContext(pass, n.Rhs[i])
		}
		if !escaping {
			continue
		}
		switch lhs := lhs.(type) {
		case *ast.Ident:
			if v, ok := pass.TypesInfo.ObjectOf(lhs).(*types.Var); ok && isGlobal(v) {
				pass.Reportf(lhs.Pos(), "generator context stored in package variable %s", lhs.Name)
			}
		case *ast.SelectorExpr:
			if sel, ok := pass.TypesInfo.Selections[lhs]; ok {
				if sel.Kind() == types.FieldVal {
					pass.Reportf(lhs.Pos(), "generator context stored in a struct field")
				}
			} else if v, ok := pass.TypesInfo.ObjectOf(lhs.Sel).(*types.Var); ok && isGlobal(v) {
				pass.Reportf(lhs.Pos(), "generator context stored in package variable %s", lhs.Sel.Name)
			}
		case *ast.IndexExpr:
			pass.Reportf(lhs.Pos(), "generator context stored in a map or slice element")
		}
	}
}

func composite(pass *analysis.Pass, n *ast.CompositeLit) {
	for _, elt := range n.Elts {
		v := elt
		if kv, ok := elt.(*ast.KeyValueExpr); ok {
			v = kv.Value
		}
		if isContext(pass, v) {
			pass.Reportf(v.Pos(), "generator context stored in a composite literal")
		}
	}
}

func gostmt(pass *analysis.Pass, n *ast.GoStmt) {
	call := n.Call
	if sel, ok := call.Fun.(*ast.SelectorExpr); ok && isContext(pass, sel.X) {
		pass.Reportf(sel.X.Pos(), "generator context passed to a new goroutine")
	}
	for _, arg := range call.Args {
		if isContext(pass, arg) {
			pass.Reportf(arg.Pos(), "generator context passed to a new goroutine")
		}
	}

	lit, ok := call.Fun.(*ast.FuncLit)
	if !ok {
		return
	}
	// Report each context variable declared outside the literal once per
	// goroutine, whatever the number of uses.
	seen := make(map[types.Object]bool)
	ast.Inspect(lit.Body, func(m ast.Node) bool {
		if _, ok := m.(*ast.GoStmt); ok {
			// Nested go statements get their own visit.
			return false
		}
		id, ok := m.(*ast.Ident)
		if !ok || !isContext(pass, id) {
			return true
		}
		obj := pass.TypesInfo.ObjectOf(id)
		if obj == nil || seen[obj] {
			return true
		}
		if obj.Pos() < lit.Pos() || obj.Pos() >= lit.End() {
			seen[obj] = true
			pass.Reportf(id.Pos(), "generator context captured by a goroutine")
		}
		return true
	})
}

func isGlobal(v *types.Var) bool {
	return v.Pkg() != nil && v.Parent() == v.Pkg().Scope()
}

func isContext(pass *analysis.Pass, e ast.Expr) bool {
	ptr, ok := pass.TypesInfo.TypeOf(e).(*types.Pointer)
	if !ok {
		return false
	}
	named, ok := ptr.Elem().(*types.Named)
	if !ok {
		return false
	}
	obj := named.Obj()
	return obj.Name() == "Context" && obj.Pkg() != nil && obj.Pkg().Path() == contextPackage
}
