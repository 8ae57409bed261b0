// Package config loads cppts.toml.
//
// The file is optional: every field has a default, and a table that is
// present only overrides the keys it defines.
package config

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"cppts/internal/format"
)

// FileName is the manifest looked up from the input location upwards.
const FileName = "cppts.toml"

type Config struct {
	Convert ConvertConfig     `toml:"convert"`
	Format  FormatConfig      `toml:"format"`
	Types   map[string]string `toml:"types"`
	Cache   CacheConfig       `toml:"cache"`
}

type ConvertConfig struct {
	Extensions        []string `toml:"extensions"`
	QualifyReferences bool     `toml:"qualify_references"`
	OutDir            string   `toml:"out_dir"`
	OutExt            string   `toml:"out_ext"`
}

type FormatConfig struct {
	Enabled        bool   `toml:"enabled"`
	IndentWidth    int    `toml:"indent_width"`
	UseTabs        bool   `toml:"use_tabs"`
	Quote          string `toml:"quote"`
	TrailingCommas bool   `toml:"trailing_commas"`
	LineWidth      int    `toml:"line_width"`
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"` // пусто: os.UserCacheDir()/cppts
}

// Manifest is a loaded config together with where it came from.
type Manifest struct {
	Path   string // empty when no file was found
	Root   string
	Config Config
}

// Default returns the settings used when no cppts.toml exists.
func Default() Config {
	return Config{
		Convert: ConvertConfig{
			Extensions: []string{".cpp", ".cc", ".cxx", ".h", ".hpp"},
			OutExt:     ".ts",
		},
		Format: FormatConfig{
			Enabled:        true,
			IndentWidth:    2,
			Quote:          "single",
			TrailingCommas: true,
			LineWidth:      100,
		},
		Types: map[string]string{},
		Cache: CacheConfig{Enabled: true},
	}
}

// Find walks up from startDir to locate cppts.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover finds and loads the manifest for startDir. Without a file it
// returns the defaults rooted at startDir.
func Discover(startDir string) (*Manifest, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		root, _ := filepath.Abs(startDir)
		return &Manifest{Root: root, Config: Default()}, nil
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, nil
}

// Load decodes one cppts.toml on top of the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return Decode(path, data)
}

// Decode parses manifest text; name is used in error messages.
func Decode(name string, data []byte) (Config, error) {
	cfg := Default()
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", name, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", name, strings.Join(keys, ", "))
	}
	if meta.IsDefined("convert", "extensions") && len(cfg.Convert.Extensions) == 0 {
		return Config{}, fmt.Errorf("%s: [convert].extensions must not be empty", name)
	}
	for i, ext := range cfg.Convert.Extensions {
		if !strings.HasPrefix(ext, ".") {
			cfg.Convert.Extensions[i] = "." + ext
		}
	}
	if meta.IsDefined("convert", "out_ext") && !strings.HasPrefix(cfg.Convert.OutExt, ".") {
		return Config{}, fmt.Errorf("%s: [convert].out_ext must start with '.'", name)
	}
	if meta.IsDefined("format", "indent_width") && cfg.Format.IndentWidth <= 0 {
		return Config{}, fmt.Errorf("%s: [format].indent_width must be positive", name)
	}
	if meta.IsDefined("format", "line_width") && cfg.Format.LineWidth <= 0 {
		return Config{}, fmt.Errorf("%s: [format].line_width must be positive", name)
	}
	if _, err := format.ParseQuote(cfg.Format.Quote); err != nil {
		return Config{}, fmt.Errorf("%s: [format].quote: %w", name, err)
	}
	if cfg.Types == nil {
		cfg.Types = map[string]string{}
	}
	return cfg, nil
}

// FormatOptions converts the [format] table for the formatter.
func (c Config) FormatOptions() format.Options {
	quote, err := format.ParseQuote(c.Format.Quote)
	if err != nil {
		quote = format.QuotePreserve
	}
	return format.Options{
		IndentWidth:    c.Format.IndentWidth,
		UseTabs:        c.Format.UseTabs,
		Quote:          quote,
		TrailingCommas: c.Format.TrailingCommas,
		LineWidth:      c.Format.LineWidth,
	}
}

// HasExtension reports whether path should be converted.
func (c Config) HasExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range c.Convert.Extensions {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}

// Fingerprint digests the settings that affect converted output.
// Paths and cache settings are left out.
func (c Config) Fingerprint() string {
	relevant := struct {
		QualifyReferences bool              `toml:"qualify_references"`
		Format            FormatConfig      `toml:"format"`
		Types             map[string]string `toml:"types"`
	}{c.Convert.QualifyReferences, c.Format, c.Types}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(relevant); err != nil {
		// map[string]string and plain structs always encode
		panic(fmt.Errorf("config fingerprint: %w", err))
	}
	sum := sha256.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:])
}
