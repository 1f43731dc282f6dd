// Package config loads render settings.
//
// Settings come from defaults, optionally overlaid by a YAML or CUE file.
// Whatever the source, the merged result is checked against a CUE schema
// before use, so a config that loads is always renderable.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/roach88/sortvis/internal/algo"
)

// Config holds everything needed to render one animation.
type Config struct {
	// Algorithm is a registry identifier (see algo.Names).
	Algorithm string `yaml:"algorithm" json:"algorithm"`

	// Frames is the number of frames to synthesize, at least 2.
	Frames int `yaml:"frames" json:"frames"`

	// Randomise shuffles every row before sorting.
	Randomise bool `yaml:"randomise" json:"randomise"`

	// Reverse flips the whole grid before sorting.
	Reverse bool `yaml:"reverse" json:"reverse"`

	// Seed fixes the shuffle. 0 draws a fresh seed per run.
	Seed uint64 `yaml:"seed" json:"seed"`

	// DelayCS is the per-frame GIF delay in hundredths of a second.
	DelayCS int `yaml:"delay" json:"delay"`

	// LoopCount is the GIF loop count: 0 forever, -1 once.
	LoopCount int `yaml:"loop" json:"loop"`

	// Width rescales the source image before sorting. 0 keeps it.
	Width int `yaml:"width" json:"width"`
}

// Format identifies a config file syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatCUE  Format = "cue"
)

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Algorithm: algo.DefaultName,
		Frames:    60,
		Randomise: true,
		Reverse:   false,
		DelayCS:   5,
		LoopCount: 0,
	}
}

// FormatOf picks the syntax from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".cue":
		return FormatCUE, nil
	default:
		return "", fmt.Errorf("unsupported config extension %q (want .yaml, .yml or .cue)", filepath.Ext(path))
	}
}

// Load reads path, overlays it on Default and validates the result.
func Load(path string) (Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := Parse(data, format, path)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse overlays data on Default and validates the result. filename is only
// used in CUE error positions.
func Parse(data []byte, format Format, filename string) (Config, error) {
	cfg := Default()

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// An empty or comments-only file overrides nothing.
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case FormatCUE:
		ctx := cuecontext.New()
		v := ctx.CompileBytes(data, cue.Filename(filename))
		if err := v.Err(); err != nil {
			return Config{}, fmt.Errorf("failed to compile CUE: %w", err)
		}
		// Identifiers are folded by Normalize below, so the file schema
		// only requires algorithm to be a string.
		v = schema(ctx, "string").Unify(v)
		if err := v.Validate(); err != nil {
			return Config{}, fmt.Errorf("invalid config: %w", err)
		}
		if err := v.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("failed to decode CUE: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("unsupported config format %q", format)
	}

	cfg.Normalize()
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Normalize rewrites the algorithm identifier to registry form.
func (c *Config) Normalize() {
	c.Algorithm = algo.Normalize(norm.NFC.String(c.Algorithm))
}

// Validate checks a complete config against the schema.
func Validate(cfg Config) error {
	ctx := cuecontext.New()
	v := schema(ctx, algorithmConstraint()).Unify(ctx.Encode(cfg))
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// algorithmConstraint is a CUE disjunction of every registered identifier,
// built from the registry so the two can never drift.
func algorithmConstraint() string {
	names := algo.Names()
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = strconv.Quote(n)
	}
	return strings.Join(quoted, " | ")
}

// schema compiles the #Config definition with algorithm bound to the given
// CUE constraint.
func schema(ctx *cue.Context, algorithm string) cue.Value {
	src := fmt.Sprintf(`
#Config: {
	algorithm?: %s
	frames?:    int & >=2
	randomise?: bool
	reverse?:   bool
	seed?:      int & >=0
	delay?:     int & >=0
	loop?:      int & >=-1
	width?:     int & >=0
}
`, algorithm)

	return ctx.CompileString(src, cue.Filename("schema.cue")).LookupPath(cue.ParsePath("#Config"))
}
