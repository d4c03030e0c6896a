package driver

import (
	"context"
	"errors"
	"strconv"
	"time"

	"w3cv/internal/diag"
	"w3cv/internal/observ"
	"w3cv/internal/source"
	"w3cv/internal/trace"
)

// Options configures a run.
type Options struct {
	Checker     Checker
	CSSWarnings bool          // report Jigsaw warnings as diagnostics
	Progress    ProgressSink  // may be nil
	Timer       *observ.Timer // may be nil
	// OnResult is called after each file, in argument order, before the next
	// file starts.
	OnResult func(*Result)
}

// Result is the outcome of one path.
type Result struct {
	Path    string
	Kind    source.Kind
	File    *source.File // nil when loading failed
	Bag     *diag.Bag
	Err     *FileError
	Elapsed time.Duration
}

// Count is the contribution of the file to the exit status: one per
// diagnostic, or one for a failure.
func (r *Result) Count() int {
	if r == nil {
		return 0
	}
	if r.Err != nil {
		return 1
	}
	return r.Bag.Len()
}

// OK reports whether the file validated without diagnostics.
func (r *Result) OK() bool {
	return r != nil && r.Err == nil && r.Bag.Len() == 0
}

// Run holds the results of ValidateFiles in argument order.
type Run struct {
	FileSet *source.FileSet
	Results []*Result
}

// Total sums Count over all results.
func (r *Run) Total() int {
	total := 0
	for _, res := range r.Results {
		total += res.Count()
	}
	return total
}

// ValidateFiles validates paths one by one. It returns the context error if
// the run was cancelled; Run then holds the files finished so far.
func ValidateFiles(ctx context.Context, paths []string, opts Options) (*Run, error) {
	if opts.Progress == nil {
		opts.Progress = nopSink{}
	}
	run := &Run{
		FileSet: source.NewFileSet(),
		Results: make([]*Result, 0, len(paths)),
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "run", 0)
	span.WithExtra("files", strconv.Itoa(len(paths)))
	ctx = trace.WithSpan(ctx, span.ID())

	for _, p := range paths {
		opts.Progress.OnEvent(Event{File: p, Status: StatusQueued})
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			span.Fail().End("interrupted")
			return run, err
		}
		res := Validate(ctx, run.FileSet, p, opts)
		if err := ctx.Err(); err != nil && res.Err != nil && errors.Is(res.Err, err) {
			// запрос оборван отменой, файл не считается проверенным
			span.Fail().End("interrupted")
			return run, err
		}
		run.Results = append(run.Results, res)
		if opts.OnResult != nil {
			opts.OnResult(res)
		}
	}

	span.WithExtra("total", strconv.Itoa(run.Total())).End("")
	return run, nil
}

// Validate loads and checks a single path. Failures are recorded in
// Result.Err; Validate itself never fails.
func Validate(ctx context.Context, fs *source.FileSet, path string, opts Options) *Result {
	if opts.Progress == nil {
		opts.Progress = nopSink{}
	}
	res := &Result{Path: path, Kind: source.KindOf(path), Bag: diag.NewBag(0)}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeFile, path, trace.CurrentSpan(ctx))
	ctx = trace.WithSpan(ctx, span.ID())

	timerIdx := -1
	if opts.Timer != nil {
		timerIdx = opts.Timer.Begin(path)
	}
	started := time.Now()

	fail := func(stage Stage, err error) *Result {
		res.Err = classify(path, err)
		res.Elapsed = time.Since(started)
		if opts.Timer != nil {
			opts.Timer.End(timerIdx, string(res.Err.Kind))
		}
		span.Fail().WithExtra("kind", string(res.Err.Kind)).End(res.Err.Error())
		opts.Progress.OnEvent(Event{File: path, Stage: stage, Status: StatusError, Count: 1, Err: res.Err, Elapsed: res.Elapsed})
		return res
	}

	opts.Progress.OnEvent(Event{File: path, Stage: StageLoad, Status: StatusWorking})
	id, err := fs.Load(path)
	if err != nil {
		return fail(StageLoad, err)
	}
	res.File = fs.Get(id)
	res.Kind = res.File.Kind

	opts.Progress.OnEvent(Event{File: path, Stage: StageCheck, Status: StatusWorking})
	if opts.Checker == nil {
		panic("driver: Options.Checker is nil")
	}
	if err := analyze(ctx, opts.Checker, res.File, diag.BagReporter{Bag: res.Bag}, opts); err != nil {
		// частичные сообщения не засчитываются: файл считается упавшим
		res.Bag = diag.NewBag(0)
		return fail(StageCheck, err)
	}

	res.Elapsed = time.Since(started)
	if opts.Timer != nil {
		opts.Timer.End(timerIdx, res.Kind.String())
	}
	span.WithExtra("diagnostics", strconv.Itoa(res.Bag.Len())).End("")
	opts.Progress.OnEvent(Event{File: path, Stage: StageCheck, Status: StatusDone, Count: res.Bag.Len(), Elapsed: res.Elapsed})
	return res
}
