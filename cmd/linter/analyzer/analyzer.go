package analyzer

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

const (
	analyzerName = "shortenerlint"
	analyzerDoc  = "reports process exits outside main and package-level map variables\n\n" +
		"Only main may stop the process (panic, log.Fatal, os.Exit and the zerolog\n" +
		"equivalents). Mutable state such as URL mappings must be constructed and\n" +
		"injected, so package-level map variables are reported."
)

// Analyzer enforces the service's process-lifecycle and state rules.
var Analyzer = &analysis.Analyzer{
	Name:     analyzerName,
	Doc:      analyzerDoc,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

func run(pass *analysis.Pass) (interface{}, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	insp.WithStack([]ast.Node{(*ast.CallExpr)(nil)}, func(node ast.Node, push bool, stack []ast.Node) bool {
		if push {
			checkCall(pass, node.(*ast.CallExpr), stack)
		}
		return true
	})

	checkGlobalMaps(pass)

	return nil, nil
}

func checkCall(pass *analysis.Pass, callExpr *ast.CallExpr, stack []ast.Node) {
	switch fn := callExpr.Fun.(type) {
	case *ast.Ident:
		if fn.Name == "panic" && isBuiltin(pass, fn) {
			pass.Reportf(callExpr.Pos(), "panic is forbidden")
		}
	case *ast.SelectorExpr:
		pkgPath, ok := importedPackage(pass, fn)
		if !ok || !isExitFunc(pkgPath, fn.Sel.Name) {
			return
		}
		if !inMainFunc(pass, stack) {
			pass.Reportf(callExpr.Pos(), "%s.%s is forbidden outside main function", pkgName(pkgPath), fn.Sel.Name)
		}
	}
}

func isBuiltin(pass *analysis.Pass, ident *ast.Ident) bool {
	if pass.TypesInfo == nil {
		return true
	}
	_, ok := pass.TypesInfo.Uses[ident].(*types.Builtin)
	return ok
}

func importedPackage(pass *analysis.Pass, sel *ast.SelectorExpr) (string, bool) {
	ident, ok := sel.X.(*ast.Ident)
	if !ok || pass.TypesInfo == nil {
		return "", false
	}

	imported, ok := pass.TypesInfo.Uses[ident].(*types.PkgName)
	if !ok {
		return "", false
	}

	return imported.Imported().Path(), true
}

// isExitFunc reports whether pkgPath.name terminates the process.
func isExitFunc(pkgPath, name string) bool {
	switch pkgPath {
	case "log":
		switch name {
		case "Fatal", "Fatalf", "Fatalln", "Panic", "Panicf", "Panicln":
			return true
		}
	case "os":
		return name == "Exit"
	case "github.com/rs/zerolog/log":
		return name == "Fatal" || name == "Panic"
	}
	return false
}

func pkgName(pkgPath string) string {
	if pkgPath == "github.com/rs/zerolog/log" {
		return "zerolog/log"
	}
	return pkgPath
}

// inMainFunc reports whether the innermost enclosing function declaration is
// func main of package main. Calls inside closures declared in main count.
func inMainFunc(pass *analysis.Pass, stack []ast.Node) bool {
	if pass.Pkg.Name() != "main" {
		return false
	}

	for i := len(stack) - 1; i >= 0; i-- {
		if decl, ok := stack[i].(*ast.FuncDecl); ok {
			return decl.Recv == nil && decl.Name.Name == "main"
		}
	}
	return false
}

func checkGlobalMaps(pass *analysis.Pass) {
	scope := pass.Pkg.Scope()

	for _, name := range scope.Names() {
		v, ok := scope.Lookup(name).(*types.Var)
		if !ok {
			continue
		}

		if _, isMap := v.Type().Underlying().(*types.Map); isMap {
			pass.Reportf(v.Pos(), "package-level map variable %s, pass state explicitly instead", name)
		}
	}
}
