// Package driver sequences the per-module passes (name binding, type
// checking, CPS emission) and fans independent modules out across
// goroutines when a CLI invocation names more than one, grounded on the
// teacher's parallel module orchestration (formerly internal/driver's
// dcache/parallel machinery) but stripped of cross-module linking, which
// this middle-end never does.
package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"articc/internal/ast"
	"articc/internal/binder"
	"articc/internal/check"
	"articc/internal/cir"
	"articc/internal/diag"
	"articc/internal/emit"
	"articc/internal/source"
	"articc/internal/symbols"
	"articc/internal/trace"
	"articc/internal/types"
)

// Stage identifies which pass a Module currently occupies, reported to a
// progress observer (internal/ui) as an Event.
type Stage uint8

const (
	StageQueued Stage = iota
	StageBind
	StageCheck
	StageEmit
	StageComplete
)

// Status classifies an Event alongside its Stage.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusError
)

// Event reports one module's progress transition. File is the module's
// display path; empty means the event describes the run as a whole.
type Event struct {
	File   string
	Stage  Stage
	Status Status
}

// Module is one compilation unit ready to run through the pipeline.
type Module struct {
	Path string
	AST  *ast.Module
}

// Result holds one module's outcome. Bag is always non-nil, even on
// success, so a caller can inspect warnings. World is nil when the module
// never reached the emit stage (bind or check already failed).
type Result struct {
	Module *Module
	Bag    *diag.Bag
	World  *cir.World
	OK     bool
}

// Pipeline runs bind, check, and emit over one or more modules. Table,
// FileSet, and Types are shared across every module run through a single
// Pipeline, since diagnostics, symbol IDs, and interned types must stay
// comparable within one CLI invocation.
type Pipeline struct {
	Table   *symbols.Table
	FileSet *source.FileSet
	Types   *types.Interner
	Events  chan<- Event

	// MaxDiagnostics caps each module's diag.Bag; zero means
	// defaultBagCapacity, matching project.Manifest's own default.
	MaxDiagnostics int
}

// New constructs a Pipeline. events may be nil; when non-nil the caller
// must drain it (Run closes it once every module finishes).
func New(table *symbols.Table, fileSet *source.FileSet, tin *types.Interner, events chan<- Event) *Pipeline {
	return &Pipeline{Table: table, FileSet: fileSet, Types: tin, Events: events}
}

const defaultBagCapacity = 100

// RunOne runs the full pipeline over a single module synchronously.
func (p *Pipeline) RunOne(ctx context.Context, mod *Module) *Result {
	tracer := trace.FromContext(ctx)
	modSpan := trace.Begin(tracer, trace.ScopeModule, mod.Path, trace.CurrentSpan(ctx).SpanID)
	defer modSpan.End("")

	capacity := p.MaxDiagnostics
	if capacity <= 0 {
		capacity = defaultBagCapacity
	}
	bag := diag.NewBag(capacity)
	reporter := diag.BagReporter{Bag: bag}

	p.emit(mod.Path, StageBind, StatusWorking)
	bindSpan := trace.Begin(tracer, trace.ScopePass, "bind", modSpan.ID())
	fileRoot := p.Table.FileRoot(mod.AST.File, source.Loc{File: mod.AST.File})
	bnd := binder.New(mod.AST, p.Table, p.FileSet, reporter, fileRoot)
	ok := bnd.Run()
	bindSpan.End("")
	if !ok {
		p.emit(mod.Path, StageBind, StatusError)
		return &Result{Module: mod, Bag: bag, OK: false}
	}
	p.emit(mod.Path, StageBind, StatusDone)

	p.emit(mod.Path, StageCheck, StatusWorking)
	checkSpan := trace.Begin(tracer, trace.ScopePass, "check", modSpan.ID())
	chk := check.New(mod.AST, p.Table, p.Types, p.FileSet, reporter)
	ok = chk.Run()
	checkSpan.End("")
	if !ok {
		p.emit(mod.Path, StageCheck, StatusError)
		return &Result{Module: mod, Bag: bag, OK: false}
	}
	p.emit(mod.Path, StageCheck, StatusDone)

	p.emit(mod.Path, StageEmit, StatusWorking)
	emitSpan := trace.Begin(tracer, trace.ScopePass, "emit", modSpan.ID())
	em := emit.New(mod.AST, p.Table, p.Types)
	em.Run()
	emitSpan.End("")
	p.emit(mod.Path, StageEmit, StatusDone)

	p.emit(mod.Path, StageComplete, StatusDone)
	return &Result{Module: mod, Bag: bag, World: em.World, OK: !bag.HasErrors()}
}

// Run drives every module's pipeline independently. Modules never see each
// other's symbols: this middle-end has no cross-file linking (spec
// Non-goal), so fan-out is embarrassingly parallel. Concurrency is capped
// with SetLimit(runtime.NumCPU()) when more than one CPU is available;
// with a single CPU no limit is set.
func (p *Pipeline) Run(ctx context.Context, mods []*Module) ([]*Result, error) {
	results := make([]*Result, len(mods))
	g, ctx := errgroup.WithContext(ctx)
	if n := runtime.NumCPU(); n > 1 {
		g.SetLimit(n)
	}
	for i, mod := range mods {
		i, mod := i, mod
		p.emit(mod.Path, StageQueued, StatusQueued)
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			results[i] = p.RunOne(ctx, mod)
			return nil
		})
	}
	err := g.Wait()
	if p.Events != nil {
		close(p.Events)
	}
	return results, err
}

func (p *Pipeline) emit(file string, stage Stage, status Status) {
	if p.Events == nil {
		return
	}
	p.Events <- Event{File: file, Stage: stage, Status: status}
}

