// Package build compiles a set of Jack source files. Every file is compiled by
// its own scanner, symbol table and engine, so files are independent and are
// compiled concurrently.
package build

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/ltungv/nand2tetris/jackc/internal/jack"
)

// SourceExt is the extension of Jack source files
const SourceExt = ".jack"

// ErrNoSources is returned when the given paths hold no source file
var ErrNoSources = errors.New("no .jack files found")

// ErrOutputClash is returned when two sources would be compiled to the same
// output file
var ErrOutputClash = errors.New("sources share an output file")

// Options configures a build.
type Options struct {
	// Paths lists source files and directories holding source files.
	Paths []string
	// OutDir is where outputs are written, next to each source when empty.
	OutDir string
	// Jobs bounds the number of files compiled at once, GOMAXPROCS when zero.
	Jobs int
	// Tokens also writes the token listing of each source as <Name>T.xml.
	Tokens bool
}

// Result describes the outcome for one source file.
type Result struct {
	Source string
	Output string
	Class  string
	Bytes  int64
	// Err is the compile error of the file, if any. Outputs are only written
	// when it is nil.
	Err error
}

// Summary holds the results of a build in the order of the sources.
type Summary struct {
	Results  []Result
	Compiled int
	Failed   int
}

// Run compiles every source named by the options. A compile error is reported
// and fails only its own file; failing to read or write a file stops the
// build and is returned.
func Run(ctx context.Context, opts Options, reporter jack.Reporter) (*Summary, error) {
	sources, err := CollectSources(opts.Paths)
	if err != nil {
		return nil, err
	}
	if err := checkOutputs(sources, opts.OutDir); err != nil {
		return nil, err
	}
	if opts.OutDir != "" {
		if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
			return nil, errors.Wrap(err, "create output directory")
		}
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(sources))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, source := range sources {
		i, source := i, source
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := compileFile(source, opts)
			results[i] = res
			if err != nil {
				return err
			}
			if res.Err != nil {
				reporter.Report(res.Err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &Summary{Results: results}
	for _, res := range results {
		if res.Err != nil {
			summary.Failed++
		} else {
			summary.Compiled++
		}
	}
	return summary, nil
}

// CollectSources expands the given paths into a list of source files. Files
// are taken as given, directories contribute the .jack files directly inside
// them.
func CollectSources(paths []string) ([]string, error) {
	var sources []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot stat %q", path)
		}
		if !info.IsDir() {
			sources = append(sources, path)
			continue
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot read directory %q", path)
		}
		for _, entry := range entries {
			if entry.IsDir() || filepath.Ext(entry.Name()) != SourceExt {
				continue
			}
			sources = append(sources, filepath.Join(path, entry.Name()))
		}
	}
	if len(sources) == 0 {
		return nil, ErrNoSources
	}
	return sources, nil
}

// OutputPath returns where the output with the given suffix goes for a source.
func OutputPath(source, outDir, suffix string) string {
	base := strings.TrimSuffix(source, filepath.Ext(source))
	if outDir != "" {
		base = filepath.Join(outDir, filepath.Base(base))
	}
	return base + suffix
}

// checkOutputs rejects source lists in which two entries map to the same .vm
// file.
func checkOutputs(sources []string, outDir string) error {
	owners := make(map[string]string, len(sources))
	for _, source := range sources {
		output := filepath.Clean(OutputPath(source, outDir, ".vm"))
		if other, ok := owners[output]; ok {
			return errors.Wrapf(ErrOutputClash, "%s and %s both compile to %s", other, source, output)
		}
		owners[output] = source
	}
	return nil
}

func compileFile(path string, opts Options) (Result, error) {
	res := Result{Source: path}
	data, err := os.ReadFile(path)
	if err != nil {
		return res, errors.Wrapf(err, "read %s", path)
	}
	source := []rune(string(data))

	class, err := jack.Compile(source)
	if err != nil {
		res.Err = errors.Wrap(err, path)
		return res, nil
	}
	res.Class = class.Name

	var buf bytes.Buffer
	if res.Bytes, err = class.WriteTo(&buf); err != nil {
		return res, errors.Wrapf(err, "render %s", path)
	}
	res.Output = OutputPath(path, opts.OutDir, ".vm")
	if err := os.WriteFile(res.Output, buf.Bytes(), 0644); err != nil {
		return res, errors.Wrapf(err, "write %s", res.Output)
	}

	if opts.Tokens {
		buf.Reset()
		// the source compiled, so it scans without errors
		if err := jack.WriteTokensXML(&buf, jack.NewScanner(source)); err != nil {
			return res, errors.Wrapf(err, "tokenize %s", path)
		}
		xmlPath := OutputPath(path, opts.OutDir, "T.xml")
		if err := os.WriteFile(xmlPath, buf.Bytes(), 0644); err != nil {
			return res, errors.Wrapf(err, "write %s", xmlPath)
		}
	}
	return res, nil
}
