package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"cppts/internal/driver"
	"cppts/internal/normalize"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [flags] <file.cpp>",
	Short: "Print the syntax tree or the normalized tree of a C++ file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

func init() {
	dumpCmd.Flags().Bool("cst", false, "print the concrete syntax tree")
	dumpCmd.Flags().Bool("ir", false, "print the normalized tree as YAML (default)")
	dumpCmd.Flags().Bool("qualify-references", false, "prefix unqualified references to namespace members")
}

func runDump(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	wantCST, err := cmd.Flags().GetBool("cst")
	if err != nil {
		return err
	}
	wantIR, err := cmd.Flags().GetBool("ir")
	if err != nil {
		return err
	}
	if wantCST && wantIR {
		return fmt.Errorf("dump: --cst and --ir are mutually exclusive")
	}
	qualify, err := cmd.Flags().GetBool("qualify-references")
	if err != nil {
		return err
	}

	kind := driver.DumpIR
	if wantCST {
		kind = driver.DumpCST
	}
	out, err := driver.Dump(cmd.Context(), args[0], kind, normalize.Options{QualifyReferences: qualify})
	if err != nil {
		return fmt.Errorf("dump: %w", err)
	}
	_, err = io.WriteString(cmd.OutOrStdout(), out)
	return err
}
