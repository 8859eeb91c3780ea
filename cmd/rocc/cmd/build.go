package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roclang/rocc/internal/backend"
	"github.com/roclang/rocc/internal/compiler"
	"github.com/roclang/rocc/internal/mir"
)

var (
	buildOutput  string
	buildDumpAST bool
	buildDumpMIR bool
)

var buildCmd = &cobra.Command{
	Use:   "build [file]",
	Short: "Compile a .roc file and emit an assembly artifact",
	Args:  cobra.ExactArgs(1),
	RunE:  runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "output.s", "output assembly file path")
	buildCmd.Flags().BoolVar(&buildDumpAST, "dump-ast", false, "dump the parsed AST before compiling")
	buildCmd.Flags().BoolVar(&buildDumpMIR, "dump-mir", false, "dump the lowered MIR before emitting")
}

func runBuild(cmd *cobra.Command, args []string) error {
	filename := args[0]
	src, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	if buildDumpAST {
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

	if buildDumpMIR {
		mir.NewDumper(os.Stdout).Dump(res.Module)
	}

	f, err := os.Create(buildOutput)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", buildOutput, err)
	}
	defer f.Close()

	be := backend.TextASM{}
	if err := be.Emit(f, res.Module, res.Ctx.Vtables); err != nil {
		return fmt.Errorf("backend emission failed: %w", err)
	}

	fmt.Printf("wrote %s\n", buildOutput)
	return nil
}
