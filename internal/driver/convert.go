package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"cppts/internal/config"
	"cppts/internal/cst"
	"cppts/internal/diag"
	"cppts/internal/emit"
	"cppts/internal/format"
	"cppts/internal/ir"
	"cppts/internal/normalize"
	"cppts/internal/pipeline"
	"cppts/internal/source"
	"cppts/internal/trace"
	"cppts/internal/version"
)

// Options configures a conversion run.
type Options struct {
	Config         config.Config
	Root           string // directory of cppts.toml, base for out_dir and display paths
	Jobs           int    // 0: GOMAXPROCS
	MaxDiagnostics int    // per file; 0: defaultMaxDiagnostics
	Format         bool // run the post-formatter
	Write          bool // write <name>.ts files
	Cache          *DiskCache
	Progress       pipeline.ProgressSink
}

const defaultMaxDiagnostics = 100

// FileResult is the outcome for one source file.
type FileResult struct {
	Path       string
	OutputPath string
	FileID     source.FileID
	Output     string
	Bag        *diag.Bag
	Cached     bool
	Failed     bool
	Timings    pipeline.Timings
}

// Result collects a whole run.
type Result struct {
	FileSet *source.FileSet
	Files   []FileResult
	Timings pipeline.Timings
}

// FailedCount reports how many files did not convert.
func (r *Result) FailedCount() int {
	n := 0
	for i := range r.Files {
		if r.Files[i].Failed {
			n++
		}
	}
	return n
}

// Diagnostics merges every file's diagnostics into one sorted bag.
func (r *Result) Diagnostics(maxDiagnostics int) *diag.Bag {
	bag := diag.NewBag(maxDiagnostics)
	for i := range r.Files {
		for _, d := range r.Files[i].Bag.Items() {
			if !bag.Add(d) {
				break
			}
		}
	}
	bag.Sort()
	bag.Dedup()
	return bag
}

// ConvertFiles converts every file in paths. A failing file never stops
// the others; the returned error is reserved for problems with the run
// itself (cancellation, no usable parser).
func ConvertFiles(ctx context.Context, paths []string, opts Options) (*Result, error) {
	tracer := trace.FromContext(ctx)
	runSpan := trace.Begin(tracer, trace.ScopeDriver, "convert", trace.CurrentSpan(ctx).SpanID).
		WithExtra("files", strconv.Itoa(len(paths)))
	defer runSpan.End("")
	ctx = trace.WithSpanContext(ctx, trace.SpanContext{SpanID: runSpan.ID()})

	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = defaultMaxDiagnostics
	}
	base := opts.Root
	if base == "" {
		base, _ = os.Getwd()
	}
	fileSet := source.NewFileSetWithBase(base)
	res := &Result{FileSet: fileSet, Files: make([]FileResult, len(paths))}
	display := make([]string, len(paths))
	for i, p := range paths {
		display[i] = pipeline.DisplayPath(p, base)
	}
	pipeline.EmitQueued(opts.Progress, display)

	// FileSet не потокобезопасен: всё грузим заранее
	loaded := make([]bool, len(paths))
	pipeline.EmitRun(opts.Progress, pipeline.StageLoad, pipeline.StatusWorking, nil)
	for i, path := range paths {
		fr := &res.Files[i]
		fr.Path = display[i]
		fr.Bag = diag.NewBag(opts.MaxDiagnostics)
		start := time.Now()
		id, err := fileSet.Load(path)
		fr.Timings.Add(pipeline.StageLoad, time.Since(start))
		if err != nil {
			id = fileSet.Add(path, nil, source.FileVirtual)
			fr.FileID = id
			fr.Failed = true
			fr.Bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: id}, "failed to load file: "+err.Error()))
			pipeline.EmitFile(opts.Progress, fr.Path, pipeline.StageLoad, pipeline.StatusError, err, 0)
			continue
		}
		fr.FileID = id
		if opts.Write {
			fr.OutputPath = OutputPath(path, opts.Root, opts.Config)
		}
		loaded[i] = true
	}

	if len(paths) > 0 {
		if err := runWorkers(ctx, fileSet, res.Files, loaded, opts); err != nil {
			return res, err
		}
	}
	pipeline.EmitRun(opts.Progress, pipeline.StageWrite, pipeline.StatusDone, nil)

	for i := range res.Files {
		res.Timings.Merge(res.Files[i].Timings)
	}
	runSpan.WithExtra("failed", strconv.Itoa(res.FailedCount()))
	return res, nil
}

func runWorkers(ctx context.Context, fileSet *source.FileSet, results []FileResult, loaded []bool, opts Options) error {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	jobs = min(jobs, len(results))

	g, gctx := errgroup.WithContext(ctx)
	work := make(chan int)
	g.Go(func() error {
		defer close(work)
		for i := range results {
			if !loaded[i] {
				continue
			}
			select {
			case work <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for range jobs {
		g.Go(func() error {
			parser, err := cst.NewParser()
			if err != nil {
				return fmt.Errorf("driver: %w", err)
			}
			defer parser.Close()
			conv := newConverter(opts)
			// индексы уникальны для каждой задачи, мьютекс не нужен
			for i := range work {
				conv.convert(gctx, parser, fileSet.Get(results[i].FileID), &results[i])
			}
			return nil
		})
	}
	return g.Wait()
}

// ConvertSource converts in-memory text, e.g. stdin or a test case. The
// returned FileSet resolves the result's diagnostics.
func ConvertSource(ctx context.Context, name string, content []byte, opts Options) (FileResult, *source.FileSet, error) {
	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = defaultMaxDiagnostics
	}
	fileSet := source.NewFileSetWithBase(opts.Root)
	id := fileSet.AddVirtual(name, content)
	fr := FileResult{Path: name, FileID: id, Bag: diag.NewBag(opts.MaxDiagnostics)}

	parser, err := cst.NewParser()
	if err != nil {
		return fr, fileSet, fmt.Errorf("driver: %w", err)
	}
	defer parser.Close()

	opts.Write = false
	newConverter(opts).convert(ctx, parser, fileSet.Get(id), &fr)
	return fr, fileSet, nil
}

// converter holds per-worker state.
type converter struct {
	opts        Options
	renderer    *emit.Renderer
	fingerprint string
}

func newConverter(opts Options) *converter {
	return &converter{
		opts:        opts,
		renderer:    emit.New(emit.Options{TypeMap: opts.Config.Types}),
		fingerprint: opts.Config.Fingerprint() + ";format=" + strconv.FormatBool(opts.Format),
	}
}

func (c *converter) convert(ctx context.Context, parser *cst.Parser, file *source.File, fr *FileResult) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeModule, "file", trace.CurrentSpan(ctx).SpanID).
		WithExtra("path", fr.Path)
	ctx = trace.WithSpanContext(ctx, trace.SpanContext{SpanID: span.ID()})

	status := pipeline.StatusDone
	defer func() {
		span.End(string(status))
		pipeline.EmitFile(c.opts.Progress, fr.Path, pipeline.StageWrite, status, nil, fr.Timings.Sum(pipeline.Stages...))
	}()

	if fr.Bag == nil {
		fr.Bag = diag.NewBag(c.opts.MaxDiagnostics)
	}

	key := CacheKey(file.Content, c.fingerprint, version.Version)
	if c.opts.Cache != nil {
		var payload DiskPayload
		hit, err := c.opts.Cache.Get(key, &payload)
		if err != nil {
			fr.Bag.Add(diag.NewWarning(diag.IOCacheError, source.Span{File: file.ID}, "cache read failed: "+err.Error()))
		}
		if hit {
			fr.Output, fr.Cached = payload.Output, true
			c.reportOverflows(fr, file.ID, payload.Overflows)
			if err := c.write(ctx, fr); err != nil {
				status = pipeline.StatusError
				return
			}
			status = pipeline.StatusCached
			return
		}
	}

	var overflows []format.Overflow
	if err := c.pipeline(ctx, parser, file, fr, &overflows); err != nil {
		fr.Failed = true
		status = pipeline.StatusError
		c.report(fr, file.ID, err)
		return
	}

	if c.opts.Cache != nil {
		payload := &DiskPayload{Source: fr.Path, Output: fr.Output, Overflows: overflows, Formatted: c.opts.Format}
		if err := c.opts.Cache.Put(key, payload); err != nil {
			fr.Bag.Add(diag.NewWarning(diag.IOCacheError, source.Span{File: file.ID}, "cache write failed: "+err.Error()))
		}
	}
	if err := c.write(ctx, fr); err != nil {
		status = pipeline.StatusError
	}
}

// pipeline runs parse, normalize, render and format for one file.
func (c *converter) pipeline(ctx context.Context, parser *cst.Parser, file *source.File, fr *FileResult, overflows *[]format.Overflow) error {
	var root *cst.Node
	err := c.stage(ctx, fr, pipeline.StageParse, func(context.Context) error {
		var err error
		root, err = parser.Parse(file)
		return err
	})
	if err != nil {
		return err
	}

	nodes, err := stageValue(ctx, c, fr, pipeline.StageNormalize, func(ctx context.Context) ([]ir.Node, error) {
		return normalize.File(ctx, root, normalize.Options{QualifyReferences: c.opts.Config.Convert.QualifyReferences})
	})
	if err != nil {
		return err
	}

	fr.Output, err = stageValue(ctx, c, fr, pipeline.StageRender, func(context.Context) (string, error) {
		return c.renderer.File(nodes)
	})
	if err != nil {
		return err
	}

	if !c.opts.Format {
		if fr.Output != "" {
			fr.Output += "\n"
		}
		return nil
	}
	return c.stage(ctx, fr, pipeline.StageFormat, func(context.Context) error {
		fr.Output, *overflows = format.Format(fr.Output, c.opts.Config.FormatOptions())
		c.reportOverflows(fr, file.ID, *overflows)
		return nil
	})
}

// stage wraps one pipeline step with progress, a pass span and timing.
func (c *converter) stage(ctx context.Context, fr *FileResult, stage pipeline.Stage, fn func(context.Context) error) error {
	pipeline.EmitFile(c.opts.Progress, fr.Path, stage, pipeline.StatusWorking, nil, 0)
	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, string(stage), trace.CurrentSpan(ctx).SpanID)
	start := time.Now()
	err := fn(trace.WithSpanContext(ctx, trace.SpanContext{SpanID: span.ID()}))
	fr.Timings.Add(stage, time.Since(start))
	detail := "ok"
	if err != nil {
		detail = trace.DetailError
	}
	span.End(detail)
	return err
}

func stageValue[T any](ctx context.Context, c *converter, fr *FileResult, stage pipeline.Stage, fn func(context.Context) (T, error)) (T, error) {
	var out T
	err := c.stage(ctx, fr, stage, func(ctx context.Context) error {
		var err error
		out, err = fn(ctx)
		return err
	})
	return out, err
}

func (c *converter) write(ctx context.Context, fr *FileResult) error {
	if !c.opts.Write || fr.OutputPath == "" {
		return nil
	}
	err := c.stage(ctx, fr, pipeline.StageWrite, func(context.Context) error {
		if err := os.MkdirAll(filepath.Dir(fr.OutputPath), 0o755); err != nil {
			return err
		}
		return os.WriteFile(fr.OutputPath, []byte(fr.Output), 0o644)
	})
	if err != nil {
		fr.Failed = true
		fr.Bag.Add(diag.NewError(diag.IOWriteFileError, source.Span{File: fr.FileID}, fmt.Sprintf("cannot write %s: %v", fr.OutputPath, err)))
	}
	return err
}

func (c *converter) reportOverflows(fr *FileResult, id source.FileID, overflows []format.Overflow) {
	rep := diag.BagReporter{Bag: fr.Bag}
	limit := c.opts.Config.FormatOptions().LineWidth
	for _, o := range overflows {
		rep.Report(diag.FmtLineTooLong, diag.SevWarning, source.Span{File: id},
			fmt.Sprintf("output line %d is %d columns wide (limit %d)", o.Line, o.Width, limit), nil)
	}
}

// report turns a conversion error into a diagnostic.
func (c *converter) report(fr *FileResult, id source.FileID, err error) {
	rep := diag.BagReporter{Bag: fr.Bag}
	var nerr *normalize.UnsupportedConstruct
	var rerr *emit.UnsupportedConstruct
	switch {
	case errors.As(err, &nerr):
		span := nerr.Span
		span.File = id
		d := diag.NewError(diag.CnvUnsupportedConstruct, span, nerr.Error()).
			WithNote(span, "inspect the syntax tree with `cppts dump --cst "+fr.Path+"`")
		diag.ReportDiagnostic(rep, d)
	case errors.As(err, &rerr):
		d := diag.NewError(diag.CnvUnsupportedKind, source.Span{File: id}, rerr.Error()).
			WithNote(source.Span{File: id}, "every normalized node kind needs a renderer; this is a converter bug")
		diag.ReportDiagnostic(rep, d)
	default:
		rep.Report(diag.ParseFailed, diag.SevError, source.Span{File: id}, err.Error(), nil)
	}
}
