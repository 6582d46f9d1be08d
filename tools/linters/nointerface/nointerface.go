// Package nointerface reports empty interface{} types and offers 'any' as a fix.
//
//	var payload interface{}  // reported
//	var payload any          // ok
package nointerface

import (
	"go/ast"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

const message = "use 'any' instead of 'interface{}'"

// Analyzer reports every empty interface type. Interfaces with methods are left alone.
// A //nolint or //nolint:nointerface comment on the same or previous line suppresses the report.
var Analyzer = &analysis.Analyzer{
	Name:     "nointerface",
	Doc:      "checks for interface{} usage and suggests using 'any'",
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

	insp.Preorder([]ast.Node{(*ast.InterfaceType)(nil)}, func(n ast.Node) {
		iface := n.(*ast.InterfaceType)
		if iface.Methods != nil && len(iface.Methods.List) > 0 {
			return
		}

		pos := pass.Fset.Position(iface.Pos())
		if suppressed[lineKey{pos.Filename, pos.Line}] || suppressed[lineKey{pos.Filename, pos.Line - 1}] {
			return
		}

		pass.Report(analysis.Diagnostic{
			Pos:     iface.Pos(),
			End:     iface.End(),
			Message: message,
			SuggestedFixes: []analysis.SuggestedFix{{
				Message:   "Replace 'interface{}' with 'any'",
				TextEdits: []analysis.TextEdit{{Pos: iface.Pos(), End: iface.End(), NewText: []byte("any")}},
			}},
		})
	})

	return nil, nil
}

// nolintLines collects the lines carrying a general //nolint or one naming nointerface.
func nolintLines(pass *analysis.Pass) map[lineKey]bool {
	lines := make(map[lineKey]bool)
	for _, file := range pass.Files {
		for _, group := range file.Comments {
			for _, c := range group.List {
				directive, _, _ := strings.Cut(strings.TrimPrefix(c.Text, "//"), " ")
				if !strings.HasPrefix(directive, "nolint") {
					continue
				}
				if names, scoped := strings.CutPrefix(directive, "nolint:"); scoped && !strings.Contains(names, "nointerface") {
					continue
				}
				pos := pass.Fset.Position(c.Pos())
				lines[lineKey{pos.Filename, pos.Line}] = true
			}
		}
	}
	return lines
}
