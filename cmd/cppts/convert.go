package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"cppts/internal/config"
	"cppts/internal/diag"
	"cppts/internal/diagfmt"
	"cppts/internal/driver"
	"cppts/internal/pipeline"
	"cppts/internal/source"
)

var convertCmd = &cobra.Command{
	Use:   "convert [flags] <file|directory|-> [...]",
	Short: "Convert C++ sources to TypeScript",
	Long: `Convert C++ files, or every matching file under the given directories,
into TypeScript. A single "-" reads C++ from stdin and prints the result.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("out-dir", "", "write outputs under this directory, mirroring the source tree")
	convertCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	convertCmd.Flags().Bool("no-cache", false, "disable the conversion cache")
	convertCmd.Flags().Bool("clear-cache", false, "empty the conversion cache before running")
	convertCmd.Flags().Bool("no-format", false, "skip the output formatter")
	convertCmd.Flags().Bool("stdout", false, "print TypeScript to stdout instead of writing files")
	convertCmd.Flags().String("format", "text", "diagnostics format (text|json|short)")
	convertCmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
	convertCmd.Flags().Bool("qualify-references", false, "prefix unqualified references to namespace members")
	convertCmd.Flags().String("path-mode", "auto", "how diagnostics show paths (auto|absolute|relative|basename)")
	convertCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	convertCmd.Flags().String("min-severity", "info", "hide diagnostics below this severity (info|warning|error)")
}

// convertFlags holds the parsed flag set of the convert command.
type convertFlags struct {
	outDir         string
	jobs           int
	noCache        bool
	clearCache     bool
	noFormat       bool
	stdout         bool
	format         string
	ui             uiMode
	qualify        bool
	pathMode       diagfmt.PathMode
	withNotes      bool
	minSeverity    diag.Severity
	maxDiagnostics int
	quiet          bool
	timings        bool
	color          bool
	configPath     string
}

func readConvertFlags(cmd *cobra.Command) (convertFlags, error) {
	var f convertFlags
	var err error
	flags := cmd.Flags()
	root := cmd.Root().PersistentFlags()

	if f.outDir, err = flags.GetString("out-dir"); err != nil {
		return f, err
	}
	if f.jobs, err = flags.GetInt("jobs"); err != nil {
		return f, err
	}
	if f.noCache, err = flags.GetBool("no-cache"); err != nil {
		return f, err
	}
	if f.clearCache, err = flags.GetBool("clear-cache"); err != nil {
		return f, err
	}
	if f.noFormat, err = flags.GetBool("no-format"); err != nil {
		return f, err
	}
	if f.stdout, err = flags.GetBool("stdout"); err != nil {
		return f, err
	}
	if f.format, err = flags.GetString("format"); err != nil {
		return f, err
	}
	switch f.format {
	case "text", "json", "short":
	default:
		return f, fmt.Errorf("unknown format: %s", f.format)
	}
	uiStr, err := flags.GetString("ui")
	if err != nil {
		return f, err
	}
	if f.ui, err = readUIMode(uiStr); err != nil {
		return f, err
	}
	if f.qualify, err = flags.GetBool("qualify-references"); err != nil {
		return f, err
	}
	pathStr, err := flags.GetString("path-mode")
	if err != nil {
		return f, err
	}
	if f.pathMode, err = diagfmt.ParsePathMode(pathStr); err != nil {
		return f, err
	}
	if f.withNotes, err = flags.GetBool("with-notes"); err != nil {
		return f, err
	}
	sevStr, err := flags.GetString("min-severity")
	if err != nil {
		return f, err
	}
	if f.minSeverity, err = diag.ParseSeverity(sevStr); err != nil {
		return f, err
	}

	if f.maxDiagnostics, err = root.GetInt("max-diagnostics"); err != nil {
		return f, err
	}
	if f.quiet, err = root.GetBool("quiet"); err != nil {
		return f, err
	}
	if f.timings, err = root.GetBool("timings"); err != nil {
		return f, err
	}
	if f.configPath, err = root.GetString("config"); err != nil {
		return f, err
	}
	if f.color, err = useColor(cmd, os.Stderr); err != nil {
		return f, err
	}
	return f, nil
}

// loadManifest resolves cppts.toml: an explicit --config wins, otherwise
// the search starts at the first input.
func loadManifest(configPath, start string) (*config.Manifest, error) {
	if configPath != "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		abs, err := filepath.Abs(configPath)
		if err != nil {
			return nil, err
		}
		return &config.Manifest{Path: abs, Root: filepath.Dir(abs), Config: cfg}, nil
	}
	if start == "-" {
		start = "."
	}
	return config.Discover(start)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	flags, err := readConvertFlags(cmd)
	if err != nil {
		return err
	}
	manifest, err := loadManifest(flags.configPath, args[0])
	if err != nil {
		return err
	}
	cfg := manifest.Config
	if flags.outDir != "" {
		cfg.Convert.OutDir = flags.outDir
	}
	if flags.qualify {
		cfg.Convert.QualifyReferences = true
	}

	opts := driver.Options{
		Config:         cfg,
		Root:           manifest.Root,
		Jobs:           flags.jobs,
		MaxDiagnostics: flags.maxDiagnostics,
		Format:         cfg.Format.Enabled && !flags.noFormat,
		Write:          !flags.stdout,
	}

	if len(args) == 1 && args[0] == "-" {
		return convertStdin(cmd, flags, opts)
	}

	if cfg.Cache.Enabled && !flags.noCache {
		cache, err := driver.OpenDiskCache(cfg.Cache.Dir, "cppts")
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: cache disabled: %v\n", err)
		} else {
			if flags.clearCache {
				if err := cache.DropAll(); err != nil {
					return fmt.Errorf("failed to clear cache: %w", err)
				}
			}
			opts.Cache = cache
		}
	}

	files, err := driver.CollectFiles(args, cfg)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no C++ files found (extensions: %s)", strings.Join(cfg.Convert.Extensions, ", "))
	}

	var res *driver.Result
	if !flags.quiet && !flags.stdout && shouldUseTUI(flags.ui, len(files)) {
		title := fmt.Sprintf("converting %d files", len(files))
		res, err = runConvertWithUI(cmd.Context(), title, files, pipeline.DisplayFiles(files, manifest.Root), opts)
	} else {
		res, err = driver.ConvertFiles(cmd.Context(), files, opts)
	}
	if err != nil {
		return err
	}

	if flags.stdout {
		if err := printOutputs(cmd.OutOrStdout(), res.Files); err != nil {
			return err
		}
	}

	bag := res.Diagnostics(flags.maxDiagnostics)
	if flags.timings && flags.format == "json" {
		driver.AppendTimingDiagnostic(bag, res.Timer().Report())
	}
	if err := printDiagnostics(cmd.ErrOrStderr(), bag, res.FileSet, flags); err != nil {
		return err
	}

	failed := res.FailedCount()
	if failed > 0 {
		exitCode = 1
		dumpTraceRing(cmd, cmd.ErrOrStderr())
	}
	if !flags.quiet && flags.format != "json" {
		converted := len(res.Files) - failed
		fmt.Fprintf(cmd.ErrOrStderr(), "converted %d of %d files", converted, len(res.Files))
		if cached := countCached(res.Files); cached > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), " (%d cached)", cached)
		}
		fmt.Fprintln(cmd.ErrOrStderr())
	}
	if flags.timings && flags.format != "json" {
		fmt.Fprint(cmd.ErrOrStderr(), res.Timer().Summary())
	}
	return nil
}

// convertStdin converts C++ read from stdin and prints the result.
func convertStdin(cmd *cobra.Command, flags convertFlags, opts driver.Options) error {
	content, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}
	fr, fileSet, err := driver.ConvertSource(cmd.Context(), "<stdin>", content, opts)
	if err != nil {
		return err
	}
	if !fr.Failed {
		if _, err := io.WriteString(cmd.OutOrStdout(), fr.Output); err != nil {
			return err
		}
	} else {
		exitCode = 1
		dumpTraceRing(cmd, cmd.ErrOrStderr())
	}
	return printDiagnostics(cmd.ErrOrStderr(), fr.Bag, fileSet, flags)
}

// printOutputs writes every converted file to w, with a header line per
// file when there is more than one.
func printOutputs(w io.Writer, files []driver.FileResult) error {
	multi := len(files) > 1
	for i := range files {
		fr := &files[i]
		if fr.Failed {
			continue
		}
		if multi {
			if _, err := fmt.Fprintf(w, "// %s\n", fr.Path); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, fr.Output); err != nil {
			return err
		}
	}
	return nil
}

func printDiagnostics(w io.Writer, bag *diag.Bag, fileSet *source.FileSet, flags convertFlags) error {
	bag.Filter(flags.minSeverity)
	switch flags.format {
	case "json":
		return diagfmt.JSON(w, bag, fileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         flags.pathMode,
			Max:              flags.maxDiagnostics,
			IncludeNotes:     flags.withNotes,
		})
	case "short":
		if out := diag.FormatShortDiagnostics(bag.Items(), fileSet, flags.withNotes); out != "" {
			_, err := fmt.Fprintln(w, out)
			return err
		}
		return nil
	default:
		diagfmt.Pretty(w, bag, fileSet, diagfmt.PrettyOpts{
			Color:     flags.color,
			Context:   1,
			PathMode:  flags.pathMode,
			ShowNotes: flags.withNotes,
		})
		return nil
	}
}

func countCached(files []driver.FileResult) int {
	n := 0
	for i := range files {
		if files[i].Cached {
			n++
		}
	}
	return n
}
