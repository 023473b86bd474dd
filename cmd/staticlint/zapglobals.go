package main

import (
	"go/ast"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

const zapPath = "go.uber.org/zap"

// ZapGlobalsAnalyzer reports uses of zap.L, zap.S and zap.ReplaceGlobals.
// Loggers are passed to constructors explicitly.
var ZapGlobalsAnalyzer = &analysis.Analyzer{
	Name:     "zapglobalslint",
	Doc:      "forbid the global zap loggers",
	Run:      runZapGlobals,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
}

func runZapGlobals(pass *analysis.Pass) (any, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	insp.Preorder([]ast.Node{(*ast.CallExpr)(nil)}, func(n ast.Node) {
		call := n.(*ast.CallExpr)
		for _, name := range []string{"L", "S", "ReplaceGlobals"} {
			if isPkgFunc(pass, call, zapPath, name) {
				pass.Reportf(call.Pos(), "zap.%s uses the global logger, inject a *zap.Logger instead", name)
				return
			}
		}
	})
	return nil, nil
}
