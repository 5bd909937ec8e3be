package main

// This is a compiler for the Jack programming language written in Go. It
// translates every class into a .vm file for the VM translator.

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/ltungv/nand2tetris/jackc/internal/build"
	"github.com/ltungv/nand2tetris/jackc/internal/jack"
)

func main() {
	outDir := flag.String("o", "", "directory for the output files (default: next to each source)")
	jobs := flag.Int("j", 0, "number of files compiled at once (default: number of CPUs)")
	tokens := flag.Bool("tokens", false, "also write the token listing of each source as <Name>T.xml")
	verbose := flag.Bool("v", false, "print every compiled file")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: jackc [flags] <file.jack | dir>...\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(64)
	}

	reporter := jack.NewSimpleReporter(os.Stderr)
	opts := build.Options{
		Paths:  flag.Args(),
		OutDir: *outDir,
		Jobs:   *jobs,
		Tokens: *tokens,
	}
	summary, err := build.Run(context.Background(), opts, reporter)
	if errors.Is(err, build.ErrNoSources) {
		exitOnError(err, 66)
	}
	if errors.Is(err, build.ErrOutputClash) {
		exitOnError(err, 64)
	}
	exitOnError(err, 74)

	if *verbose {
		for _, res := range summary.Results {
			if res.Err != nil {
				continue
			}
			fmt.Printf("%s -> %s (%s)\n", res.Source, res.Output, humanize.Bytes(uint64(res.Bytes)))
		}
		fmt.Printf("%d compiled, %d failed\n", summary.Compiled, summary.Failed)
	}
	exitIf(reporter.HadError(), 65)
}

func exitOnError(err error, status int) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(status)
	}
}

func exitIf(cond bool, status int) {
	if cond {
		os.Exit(status)
	}
}
