/*
Staticlint runs the project's static analysis suite through multichecker.

The suite is made of:

  - every analyzer from golang.org/x/tools/go/analysis/passes that applies to
    plain Go code;
  - the SA group of honnef.co/go/tools/staticcheck;
  - ST1005 (error strings) and ST1016 (consistent receiver names) from
    stylecheck, plus QF1001 (De Morgan) from quickfix;
  - osexitlint, which forbids os.Exit inside main.main;
  - zapglobalslint, which forbids the process-wide zap.L and zap.S loggers.

Run it like go vet:

	go run ./cmd/staticlint ./...
*/
package main

import (
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"
	"golang.org/x/tools/go/analysis/passes/appends"
	"golang.org/x/tools/go/analysis/passes/assign"
	"golang.org/x/tools/go/analysis/passes/atomic"
	"golang.org/x/tools/go/analysis/passes/bools"
	"golang.org/x/tools/go/analysis/passes/buildtag"
	"golang.org/x/tools/go/analysis/passes/composite"
	"golang.org/x/tools/go/analysis/passes/copylock"
	"golang.org/x/tools/go/analysis/passes/defers"
	"golang.org/x/tools/go/analysis/passes/directive"
	"golang.org/x/tools/go/analysis/passes/errorsas"
	"golang.org/x/tools/go/analysis/passes/httpresponse"
	"golang.org/x/tools/go/analysis/passes/ifaceassert"
	"golang.org/x/tools/go/analysis/passes/loopclosure"
	"golang.org/x/tools/go/analysis/passes/lostcancel"
	"golang.org/x/tools/go/analysis/passes/nilfunc"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/shift"
	"golang.org/x/tools/go/analysis/passes/sigchanyzer"
	"golang.org/x/tools/go/analysis/passes/stdmethods"
	"golang.org/x/tools/go/analysis/passes/stringintconv"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"golang.org/x/tools/go/analysis/passes/testinggoroutine"
	"golang.org/x/tools/go/analysis/passes/tests"
	"golang.org/x/tools/go/analysis/passes/timeformat"
	"golang.org/x/tools/go/analysis/passes/unmarshal"
	"golang.org/x/tools/go/analysis/passes/unreachable"
	"golang.org/x/tools/go/analysis/passes/unusedresult"
	"golang.org/x/tools/go/analysis/passes/waitgroup"
	"honnef.co/go/tools/analysis/lint"
	"honnef.co/go/tools/quickfix"
	"honnef.co/go/tools/staticcheck"
	"honnef.co/go/tools/stylecheck"
)

type checkSet map[string]bool

func (s checkSet) has(name string) bool { return s[name] }

var extraChecks = checkSet{
	"ST1005": true,
	"ST1016": true,
	"QF1001": true,
}

func main() {
	analyzers := []*analysis.Analyzer{
		appends.Analyzer,
		assign.Analyzer,
		atomic.Analyzer,
		bools.Analyzer,
		buildtag.Analyzer,
		composite.Analyzer,
		copylock.Analyzer,
		defers.Analyzer,
		directive.Analyzer,
		errorsas.Analyzer,
		httpresponse.Analyzer,
		ifaceassert.Analyzer,
		loopclosure.Analyzer,
		lostcancel.Analyzer,
		nilfunc.Analyzer,
		printf.Analyzer,
		shift.Analyzer,
		sigchanyzer.Analyzer,
		stdmethods.Analyzer,
		stringintconv.Analyzer,
		structtag.Analyzer,
		testinggoroutine.Analyzer,
		tests.Analyzer,
		timeformat.Analyzer,
		unmarshal.Analyzer,
		unreachable.Analyzer,
		unusedresult.Analyzer,
		waitgroup.Analyzer,
		OsExitAnalyzer,
		ZapGlobalsAnalyzer,
	}

	analyzers = append(analyzers, pick(staticcheck.Analyzers, func(name string) bool {
		return strings.HasPrefix(name, "SA")
	})...)
	analyzers = append(analyzers, pick(stylecheck.Analyzers, extraChecks.has)...)
	analyzers = append(analyzers, pick(quickfix.Analyzers, extraChecks.has)...)

	multichecker.Main(analyzers...)
}

func pick(from []*lint.Analyzer, keep func(name string) bool) []*analysis.Analyzer {
	var out []*analysis.Analyzer
	for _, a := range from {
		if keep(a.Analyzer.Name) {
			out = append(out, a.Analyzer)
		}
	}
	return out
}
