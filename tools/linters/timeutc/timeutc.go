// Package timeutc reports time.Now() calls whose result is not converted with .UTC().
// Stored timestamps and iCalendar DTSTAMP values are UTC; a local time.Now()
// leaking into them shows up as an offset after a round trip through storage.
package timeutc

import (
	"go/ast"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
	"golang.org/x/tools/go/types/typeutil"
)

const message = "time.Now() should be followed by .UTC() for timezone consistency"

// Analyzer reports time.Now() calls not immediately followed by .UTC().
// Referencing time.Now as a value (e.g. an injectable clock) is allowed.
// A //nolint or //nolint:timeutc comment on the same or previous line suppresses the report.
var Analyzer = &analysis.Analyzer{
	Name:     "timeutc",
	Doc:      "checks for time.Now() calls without .UTC() to ensure timezone consistency",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

type lineKey struct {
	file string
	line int
}

func run(pass *analysis.Pass) (any, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	suppressed := nolintLines(pass)

	insp.WithStack([]ast.Node{(*ast.CallExpr)(nil)}, func(n ast.Node, push bool, stack []ast.Node) bool {
		if !push {
			return true
		}

		call := n.(*ast.CallExpr)
		if !isTimeNow(pass.TypesInfo, call) {
			return true
		}

		if len(stack) >= 2 {
			if sel, ok := stack[len(stack)-2].(*ast.SelectorExpr); ok && sel.Sel.Name == "UTC" {
				return true
			}
		}

		pos := pass.Fset.Position(call.Pos())
		if suppressed[lineKey{pos.Filename, pos.Line}] || suppressed[lineKey{pos.Filename, pos.Line - 1}] {
			return true
		}

		pass.Reportf(call.Pos(), message)
		return true
	})

	return nil, nil
}

// isTimeNow resolves the callee through type information, so renamed imports are caught too.
func isTimeNow(info *types.Info, call *ast.CallExpr) bool {
	fn, ok := typeutil.Callee(info, call).(*types.Func)
	if !ok || fn.Pkg() == nil {
		return false
	}
	return fn.Pkg().Path() == "time" && fn.Name() == "Now"
}

// nolintLines collects the lines carrying a general //nolint or one naming timeutc.
func nolintLines(pass *analysis.Pass) map[lineKey]bool {
	lines := make(map[lineKey]bool)
	for _, file := range pass.Files {
		for _, group := range file.Comments {
			for _, c := range group.List {
				directive, _, _ := strings.Cut(strings.TrimPrefix(c.Text, "//"), " ")
				if !strings.HasPrefix(directive, "nolint") {
					continue
				}
				if names, scoped := strings.CutPrefix(directive, "nolint:"); scoped && !strings.Contains(names, "timeutc") {
					continue
				}
				pos := pass.Fset.Position(c.Pos())
				lines[lineKey{pos.Filename, pos.Line}] = true
			}
		}
	}
	return lines
}
