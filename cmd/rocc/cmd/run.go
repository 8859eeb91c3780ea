package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roclang/rocc/internal/compiler"
	"github.com/roclang/rocc/internal/mir"
	"github.com/roclang/rocc/internal/mirexec"
)

var (
	runDumpAST bool
	runDumpMIR bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Compile a .roc file and execute main in-process",
	Long: `Compiles a .roc file through the full pipeline and hands the
lowered MIR to rocc's in-process execution engine (internal/mirexec)
rather than a linked native backend, invoking main directly.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&runDumpAST, "dump-ast", false, "dump the parsed AST before executing")
	runCmd.Flags().BoolVar(&runDumpMIR, "dump-mir", false, "dump the lowered MIR before executing")
}

func runRun(cmd *cobra.Command, args []string) error {
	filename := args[0]
	src, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	if runDumpAST {
		if mod, perr := parseForDump(filename, string(src)); perr == nil {
			dumpAST(os.Stdout, mod)
		}
	}

	res := compiler.Compile(string(src), filename)
	if !res.Ok() {
		for _, e := range res.Errors {
			fmt.Fprintln(os.Stderr, e.Format(true))
		}
		return fmt.Errorf("compilation failed with %d error(s)", len(res.Errors))
	}

	if runDumpMIR {
		mir.NewDumper(os.Stdout).Dump(res.Module)
	}

	ip := mirexec.New(res.Module, res.Ctx.Vtables, os.Stdout)
	v, err := ip.RunMain()
	if err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}
	os.Exit(int(v.Int))
	return nil
}
