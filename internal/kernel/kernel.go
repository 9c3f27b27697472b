// Package kernel is the orchestration façade tying the term factory,
// environment, and inference engine together into the single entry point
// the CLI and REPL call, the way the teacher's pipeline package wraps its
// own parse/elaborate/typecheck/eval stages behind one Config/Result pair.
package kernel

import (
	"fmt"
	"io"
	"time"

	"github.com/corekernel/corekernel/internal/env"
	"github.com/corekernel/corekernel/internal/pp"
	"github.com/corekernel/corekernel/internal/tc"
	"github.com/corekernel/corekernel/internal/tcerrors"
	"github.com/corekernel/corekernel/internal/term"
)

// Config controls one Check invocation.
type Config struct {
	Module       string // optional current module name
	Debug        bool   // trace inference steps to stderr
	JSON         bool   // render the error report (if any) as JSON
	Compact      bool   // compact JSON instead of indented
	PositionName string // label used for ErrorPos wrapping
}

// Result is what one Check call produces.
type Result struct {
	Type         term.Term
	TypePretty   string
	Report       *tcerrors.Report // non-nil only on failure
	PhaseTimings map[string]int64
}

// Check type-checks t against e under cfg, returning a Result whether or
// not checking succeeded — callers branch on Result.Report == nil.
func Check(cfg Config, fac *term.Factory, e *env.Environment, t term.Term) *Result {
	start := time.Now()
	en := tc.New(fac, e)
	en.SetDebugMode(cfg.Debug)
	if cfg.Module != "" {
		en.WithModule(cfg.Module)
	}

	ty, err := en.Infer(nil, t)
	elapsed := time.Since(start).Milliseconds()
	timings := map[string]int64{"infer": elapsed}

	if err != nil {
		wrapped := tcerrors.AtPos(tcerrors.Position{Label: cfg.PositionName}, err)
		return &Result{Report: tcerrors.ToReport(wrapped), PhaseTimings: timings}
	}
	return &Result{Type: ty, TypePretty: pp.Sprint(ty), PhaseTimings: timings}
}

// CheckFixture loads a YAML fixture (internal/env.LoadFixture) and
// type-checks each of its declared globals that carries a definition,
// returning one Result per such global (failures included, checking does
// not stop at the first one). This is the batch entry point the
// CLI's "check" subcommand and test fixtures both use.
func CheckFixture(cfg Config, fac *term.Factory, r io.Reader) (*env.Environment, []*Result, error) {
	e, err := env.LoadFixture(fac, r)
	if err != nil {
		return nil, nil, fmt.Errorf("kernel: %w", err)
	}

	var results []*Result
	for _, id := range e.GlobalNames() {
		ty, ok := e.TypeOfGlobal(id)
		if !ok {
			continue
		}
		val, ok := e.ValueOfGlobal(id)
		if !ok {
			continue // declared but undefined (e.g. an axiomatized primitive)
		}
		c := &term.Constant{Name: id, Definition: val, DeclaredTyp: ty}
		perGlobal := cfg
		perGlobal.PositionName = id.String()
		results = append(results, Check(perGlobal, fac, e, fac.Mk(c)))
	}
	return e, results, nil
}
