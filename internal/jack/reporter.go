package jack

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
)

// Reporter defines the interface for structure that can display errors to the
// user. A reporter is defined to separated errors reporting code from errors
// displaying code. Files may be compiled concurrently, so implementations
// must be safe for concurrent use.
type Reporter interface {
	Report(err error)
	HadError() bool
}

// SimpleReporter writes error as-is to inner writer, in red when the writer
// is a terminal.
type SimpleReporter struct {
	mu     sync.Mutex
	writer io.Writer
	color  bool
	hadErr bool
}

func NewSimpleReporter(writer io.Writer) Reporter {
	return &SimpleReporter{writer: writer, color: isTerminal(writer)}
}

func (reporter *SimpleReporter) Report(err error) {
	reporter.mu.Lock()
	defer reporter.mu.Unlock()
	reporter.hadErr = true
	if reporter.color {
		fmt.Fprintf(reporter.writer, "\x1b[31m%v\x1b[0m\n", err)
		return
	}
	fmt.Fprintln(reporter.writer, err)
}

func (reporter *SimpleReporter) HadError() bool {
	reporter.mu.Lock()
	defer reporter.mu.Unlock()
	return reporter.hadErr
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
