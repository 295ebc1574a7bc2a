// Package lint drives one check: resolve the build target, run the
// toolchain, and attribute the compiler's diagnostics back to the file
// under edit.
package lint

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"ferrite/internal/config"
	"ferrite/internal/diag"
	"ferrite/internal/observ"
	"ferrite/internal/parse"
	"ferrite/internal/source"
	"ferrite/internal/target"
	"ferrite/internal/toolchain"
	"ferrite/internal/trace"
)

// Options содержит опции одного прохода
type Options struct {
	Config         config.Config
	MaxDiagnostics int  // 0 — без лимита
	Jobs           int  // параллелизм RunFiles; <=0 — GOMAXPROCS
	EnableTimings  bool // собирать observ.Report по стадиям
	Runner         toolchain.Runner
	Scratch        target.Scratch
	Observe        PassObserver
	TraceParent    uint64 // span-родитель для вложенных трасс
}

func (o Options) withDefaults() Options {
	if o.Runner == nil {
		o.Runner = &toolchain.ExecRunner{}
	}
	if o.Scratch == nil {
		o.Scratch = toolchain.Scratch{}
	}
	return o
}

func (o Options) observe(ev PassEvent) {
	if o.Observe != nil {
		o.Observe(ev)
	}
}

// Run executes one lint pass over the file at path. content, when
// non-nil, is the unsaved buffer to check in place of the on-disk bytes.
// Every failure lands in the result; a pass never aborts the run.
func Run(ctx context.Context, path string, content []byte, opts Options) *Result {
	opts = opts.withDefaults()

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePass, "pass:"+path, opts.TraceParent)

	var timer *observ.Timer
	if opts.EnableTimings {
		timer = observ.NewTimer()
	}
	begin := func(name string) int {
		if timer == nil {
			return -1
		}
		return timer.Begin(name)
	}
	end := func(idx int, note string) {
		if timer == nil || idx < 0 {
			return
		}
		timer.End(idx, note)
	}

	res := &Result{Path: path, Bag: diag.NewBag(opts.MaxDiagnostics)}
	started := time.Now()
	opts.observe(PassEvent{Path: path, Status: PassStart})
	defer func() {
		if timer != nil {
			report := timer.Report()
			res.Timing = &report
		}
		span.WithExtra("status", res.Status.String())
		span.End(fmt.Sprintf("diags=%d", res.Bag.Len()))
		opts.observe(PassEvent{Path: path, Status: PassEnd, Result: res, Elapsed: time.Since(started)})
	}()

	loadIdx := begin("load")
	src, err := source.Load(path, content)
	end(loadIdx, "")
	if err != nil {
		res.Status = StatusProcessFailure
		res.Failure = err
		return res
	}
	res.Src = src

	opts.observe(PassEvent{Path: path, Status: PassStage, Stage: StageResolve})
	resolveIdx := begin("resolve")
	stageSpan := trace.Begin(tracer, trace.ScopeStage, "resolve", span.ID())
	st, cleanup, err := target.Select(opts.Config, src, opts.Scratch)
	stageSpan.End(st.Kind.String())
	end(resolveIdx, st.Kind.String())
	if err != nil {
		res.Status = StatusProcessFailure
		res.Failure = err
		return res
	}
	defer cleanup()
	res.Strategy = st

	// Metadata artifacts go to a throwaway dir so check builds never
	// litter the project tree. cargo places artifacts itself, а для
	// single-file сборки всё и так лежит в scratch.
	artifactDir := ""
	if st.Kind == target.KindEntryPoint {
		if dir, mkErr := toolchain.MetaDir(); mkErr == nil {
			artifactDir = dir
			defer func() { _ = os.RemoveAll(dir) }()
		}
	}

	opts.observe(PassEvent{Path: path, Status: PassStage, Stage: StageInvoke})
	invokeIdx := begin("invoke")
	argv, workDir := toolchain.Command(st, opts.Config, artifactDir)
	stageSpan = trace.Begin(tracer, trace.ScopeStage, "invoke", span.ID())
	raw, runErr := opts.Runner.Run(ctx, argv, workDir, nil)
	stageSpan.End(argv[0])
	end(invokeIdx, argv[0])
	res.Raw = raw

	opts.observe(PassEvent{Path: path, Status: PassStage, Stage: StageParse})
	parseIdx := begin("parse")
	parsed := parse.Output(raw)
	end(parseIdx, fmt.Sprintf("diags=%d", len(parsed)))

	opts.observe(PassEvent{Path: path, Status: PassStage, Stage: StageFilter})
	filterIdx := begin("filter")
	kept := Keep(workDir, parsed, st.CheckTarget(src))
	for _, d := range Attribute(kept, src.Path) {
		if !res.Bag.Add(d) {
			break
		}
	}
	end(filterIdx, fmt.Sprintf("kept=%d", len(kept)))

	var exitErr *exec.ExitError
	switch {
	case ctx.Err() != nil:
		// Процесс оборван таймаутом или отменой: частичный вывод уже
		// разобран построчно, но без находок проход не считается чистым.
		if res.Bag.Len() == 0 {
			res.Status = StatusProcessFailure
			res.Failure = ctx.Err()
			return res
		}
	case runErr == nil:
		// Компилятор отработал; статус решают находки по файлу.
	case errors.As(runErr, &exitErr) && len(parsed) > 0:
		// Ненулевой выход с распознанными диагностиками - обычный исход
		// проверки, а не сбой процесса.
	default:
		res.Status = StatusProcessFailure
		res.Failure = runErr
		return res
	}

	if res.Bag.Len() > 0 {
		res.Status = StatusFindings
	} else {
		res.Status = StatusClean
	}
	return res
}
