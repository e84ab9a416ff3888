package staticlint

import (
	"go/ast"
	"go/constant"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
	"golang.org/x/tools/go/types/typeutil"

	"github.com/nestjam/yap-sequencer/internal/numeral"
)

const (
	zeroAlphabetWarn    = "zero value alphabet can not encode ids"
	invalidAlphabetWarn = "invalid alphabet %q: %v"
)

// Функции, которые принимают символы алфавита строкой.
var symbolsFuncs = map[string]map[string]bool{
	"numeral":  {"NewAlphabet": true, "MustAlphabet": true},
	"sequence": {"WithSymbols": true, "SetSymbols": true},
	"switcher": {"NewFromSymbols": true},
}

// ZeroAlphabetAnalyzer сообщает о нулевом значении numeral.Alphabet
// и об алфавитах-константах, которые не пройдут проверку при выполнении.
var ZeroAlphabetAnalyzer = &analysis.Analyzer{
	Name:     "zeroalphabet",
	Doc:      "check zero value and invalid constant alphabets",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      runZeroAlphabet,
}

func runZeroAlphabet(pass *analysis.Pass) (any, error) {
	inspect := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	filter := []ast.Node{(*ast.CompositeLit)(nil), (*ast.CallExpr)(nil)}

	inspect.Preorder(filter, func(n ast.Node) {
		switch x := n.(type) {
		case *ast.CompositeLit:
			if len(x.Elts) == 0 && isAlphabet(pass.TypesInfo.TypeOf(x)) {
				pass.Reportf(x.Pos(), zeroAlphabetWarn)
			}
		case *ast.CallExpr:
			if !takesSymbols(pass.TypesInfo, x) {
				return
			}
			for _, arg := range x.Args {
				checkSymbols(pass, arg)
			}
		}
	})

	return nil, nil
}

func checkSymbols(pass *analysis.Pass, arg ast.Expr) {
	tv, ok := pass.TypesInfo.Types[arg]
	if !ok || tv.Value == nil || tv.Value.Kind() != constant.String {
		return
	}

	symbols := constant.StringVal(tv.Value)
	if _, err := numeral.NewAlphabet(symbols); err != nil {
		pass.Reportf(arg.Pos(), invalidAlphabetWarn, symbols, err)
	}
}

func takesSymbols(info *types.Info, call *ast.CallExpr) bool {
	fn, ok := typeutil.Callee(info, call).(*types.Func)
	if !ok || fn.Pkg() == nil {
		return false
	}
	return symbolsFuncs[fn.Pkg().Name()][fn.Name()]
}

func isAlphabet(t types.Type) bool {
	named, ok := t.(*types.Named)
	if !ok {
		return false
	}
	obj := named.Obj()
	return obj.Pkg() != nil && obj.Pkg().Name() == "numeral" && obj.Name() == "Alphabet"
}
