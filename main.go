package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/shk-emu/shkvm/vm"
)

// errUsage marks errors that should map to exit code 1 (bad usage or a
// file that could not be opened), as opposed to load/runtime errors which
// map to exit code 2.
var errUsage = errors.New("usage error")

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "shkvm file [file...]",
		Short:         "shkvm runs a shk virtual machine program image",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, a []string) error {
			if len(a) == 0 {
				return fmt.Errorf("%w: no input files", errUsage)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, paths []string) error {
			return runProgram(paths, verbose)
		},
	}
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "trace decode/execute to stdout")
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", errUsage, err)
	})
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitCodeFor(err)
	}
	return 0
}

func runProgram(paths []string, verbose bool) error {
	files, err := openAll(paths)
	if err != nil {
		return err
	}
	defer closeAll(files)

	m := vm.New()
	readers := make([]io.Reader, len(files))
	for i, f := range files {
		readers[i] = f
	}
	if err := vm.Load(m, readers...); err != nil {
		return err
	}

	loop := vm.NewLoop(m)
	loop.Verbose = verbose

	// Loop.Run never actually surfaces vm.ErrDebuggerQuit here: it's
	// translated to a clean (nil) return inside the debug opcode's own
	// handling in exec.go. A fatal decode/execute error is the only
	// non-nil case left.
	return loop.Run()
}

func openAll(paths []string) ([]*os.File, error) {
	files := make([]*os.File, 0, len(paths))
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			closeAll(files)
			return nil, fmt.Errorf("%w: %v", errUsage, err)
		}
		files = append(files, f)
	}
	return files, nil
}

func closeAll(files []*os.File) {
	for _, f := range files {
		f.Close()
	}
}

func exitCodeFor(err error) int {
	if errors.Is(err, errUsage) {
		return 1
	}
	return 2
}
