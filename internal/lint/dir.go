package lint

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"ferrite/internal/trace"
)

// ListRustFiles возвращает отсортированный список всех *.rs файлов под
// dir. Каталоги сборки и VCS пропускаются.
func ListRustFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// target держит артефакты cargo, включая генерированные .rs
			name := d.Name()
			if path != dir && (name == "target" || name == "node_modules" || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".rs") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// RunFiles lints every path in parallel and returns per-file results in
// input order. Один упавший процесс не прерывает остальные проходы;
// отмена контекста — прерывает.
func RunFiles(ctx context.Context, paths []string, opts Options) ([]*Result, error) {
	opts = opts.withDefaults()
	if len(paths) == 0 {
		return nil, nil
	}

	tracer := trace.FromContext(ctx)
	runSpan := trace.Begin(tracer, trace.ScopeRun, "check", opts.TraceParent)
	defer func() { runSpan.End(fmt.Sprintf("files=%d", len(paths))) }()

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	childOpts := opts
	childOpts.TraceParent = runSpan.ID()

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]*Result, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		g.Go(func(i int, path string) func() error {
			return func() error {
				// Проверка отмены
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				results[i] = Run(gctx, path, nil, childOpts)
				return nil
			}
		}(i, path))
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// RunTree lints every Rust file under dir.
func RunTree(ctx context.Context, dir string, opts Options) ([]*Result, error) {
	files, err := ListRustFiles(dir)
	if err != nil {
		return nil, err
	}
	return RunFiles(ctx, files, opts)
}
