// Package main is the opcc CLI: it glues the converter, semantizer,
// optimizer, and code-generation seam into one pipeline over a single
// JSON-encoded syntax tree. Lexing, parsing, and real LLVM emission are
// out of scope (spec.md line 7); this binary starts from the syntax
// tree's own on-the-wire shape (internal/ast.DecodeJSON) and ends at the
// code-generation seam (internal/codegen).
package main

import (
	"flag"
	"fmt"
	"os"

	"compiler/internal/ast"
	"compiler/internal/codegen"
	"compiler/internal/converter"
	"compiler/internal/logging"
	"compiler/internal/optimizer/transforms"
	"compiler/internal/optree"
	"compiler/internal/semantizer"
)

func main() {
	opt := flag.Bool("opt", false, "run the default optimization pipeline before code generation")
	dumpIR := flag.Bool("dump-ir", false, "print the operation tree's textual dump (§6.2 format)")
	logLevel := flag.Int("log-level", 0, "logging verbosity (0 = silent, 1 = debug)")
	flag.Parse()

	logging.Configure(*logLevel)

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: opcc [-opt] [-dump-ir] [-log-level N] <syntax-tree.json>")
		os.Exit(1)
	}

	if err := run(flag.Arg(0), *opt, *dumpIR); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(path string, opt, dumpIR bool) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	root, err := ast.DecodeJSON(source)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	module, err := converter.Convert(root)
	if err != nil {
		return err
	}

	ctx := semantizer.NewContext()
	semantizer.Process(module, ctx)
	if !ctx.Buffer.Empty() {
		return fmt.Errorf("%s", ctx.Buffer.Error())
	}

	if opt {
		transforms.DefaultPipeline().ProcessOp(module)
	}

	if dumpIR {
		fmt.Print(optree.Dump(module))
	}

	if _, err := codegen.NewStub().Generate(module); err != nil {
		return fmt.Errorf("codegen: %w", err)
	}
	return nil
}
