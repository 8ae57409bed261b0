package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cppts/internal/version"
)

func newVersionCmd() *cobra.Command {
	var (
		outFormat  string
		hash, date bool
		full       bool
	)
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show cppts version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.Describe(hash || full, date || full)
			out := cmd.OutOrStdout()
			switch strings.ToLower(outFormat) {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			case "pretty":
				colored, err := useColor(cmd, os.Stdout)
				if err != nil {
					return err
				}
				color.NoColor = !colored
				fmt.Fprintf(out, "%s %s\n", info.Tool, version.Pretty())
				if info.GitCommit != "" {
					fmt.Fprintf(out, "commit: %s\n", info.GitCommit)
				}
				if info.BuildDate != "" {
					fmt.Fprintf(out, "built:  %s\n", info.BuildDate)
				}
				return nil
			}
			return fmt.Errorf("unsupported format %q (must be pretty or json)", outFormat)
		},
	}
	cmd.Flags().BoolVar(&hash, "hash", false, "include git commit hash")
	cmd.Flags().BoolVar(&date, "date", false, "include build timestamp")
	cmd.Flags().BoolVar(&full, "full", false, "show all build metadata")
	cmd.Flags().StringVar(&outFormat, "format", "pretty", "output format (pretty|json)")
	return cmd
}
