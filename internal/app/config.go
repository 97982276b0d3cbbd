package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"lifereel/internal/core"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Input         string `yaml:"input"`
	Output        string `yaml:"output"`
	FPS           int    `yaml:"fps"`
	PixelsPerCell int    `yaml:"pixels_per_cell"`
	Rounds        int    `yaml:"rounds"`
	Watermark     string `yaml:"watermark"`
	Save          string `yaml:"save"`
	StillsDir     string `yaml:"stills_dir"`
	Workers       int    `yaml:"workers"`
	Buffer        int    `yaml:"buffer"`
	Quality       int    `yaml:"quality"`
	MetricsAddr   string `yaml:"metrics_addr"`
	LogLevel      string `yaml:"log_level"`
	LogFormat     string `yaml:"log_format"`
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		FPS:           16,
		PixelsPerCell: 100,
		Rounds:        100,
		Buffer:        1,
		Quality:       90,
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

// BindSimulation attaches the flags shared by every command to fs.
func (c *Config) BindSimulation(fs *pflag.FlagSet) {
	fs.StringVarP(&c.Input, "input", "i", c.Input, "input grid file of 0/1 rows")
	fs.IntVarP(&c.FPS, "fps", "f", c.FPS, "frame rate")
	fs.IntVarP(&c.PixelsPerCell, "pixels-per-cell", "p", c.PixelsPerCell, "pixels per cell; each cell is round(sqrt(p)) pixels wide")
	fs.IntVarP(&c.Rounds, "rounds", "r", c.Rounds, "number of generations to render, including the initial one")
	fs.StringVarP(&c.Watermark, "watermark", "w", c.Watermark, "watermark text stamped on every frame")
	fs.IntVar(&c.Workers, "workers", c.Workers, "goroutines per generation (0 = number of CPUs)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn or error")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "log format: text or json")
}

// Bind attaches the full set of render flags to fs.
func (c *Config) Bind(fs *pflag.FlagSet) {
	c.BindSimulation(fs)
	fs.StringVarP(&c.Output, "output", "o", c.Output, "output video file (MJPEG AVI)")
	fs.StringVarP(&c.Save, "save", "s", c.Save, "comma-separated generations to also save as PNG, e.g. 1,4,16")
	fs.StringVar(&c.StillsDir, "stills-dir", c.StillsDir, "directory for frame<k>.png files (default: the output video's directory)")
	fs.IntVar(&c.Buffer, "buffer", c.Buffer, "generations buffered between compute and encode")
	fs.IntVar(&c.Quality, "quality", c.Quality, "JPEG quality of video frames (1-100)")
	fs.StringVar(&c.MetricsAddr, "metrics-addr", c.MetricsAddr, "serve Prometheus metrics on this address while rendering")
}

// Load reads a YAML config file into c. Flags explicitly set on fs keep
// their command-line values; fs may be nil.
func (c *Config) Load(path string, fs *pflag.FlagSet) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrConfig, err)
	}
	defer f.Close()

	explicit := map[string]string{}
	if fs != nil {
		fs.Visit(func(fl *pflag.Flag) { explicit[fl.Name] = fl.Value.String() })
	}

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %s: %v", core.ErrConfig, path, err)
	}

	for name, value := range explicit {
		if err := fs.Set(name, value); err != nil {
			return fmt.Errorf("%w: --%s: %v", core.ErrConfig, name, err)
		}
	}
	return nil
}

// ValidateSimulation checks the values shared by every command.
func (c *Config) ValidateSimulation() error {
	return configError(c.simulationProblems())
}

// Validate checks every value needed to render a video.
func (c *Config) Validate() error {
	errs := c.simulationProblems()
	if c.Output == "" {
		errs = append(errs, errors.New("output file is required"))
	}
	if c.Buffer < 1 {
		errs = append(errs, fmt.Errorf("buffer must be at least 1, got %d", c.Buffer))
	}
	if c.Quality < 1 || c.Quality > 100 {
		errs = append(errs, fmt.Errorf("quality must be within 1-100, got %d", c.Quality))
	}
	if _, err := parseExportList(c.Save); err != nil {
		errs = append(errs, err)
	}
	return configError(errs)
}

func (c *Config) simulationProblems() []error {
	var errs []error
	if c.Input == "" {
		errs = append(errs, errors.New("input file is required"))
	}
	if c.FPS < 1 {
		errs = append(errs, fmt.Errorf("fps must be at least 1, got %d", c.FPS))
	}
	if c.PixelsPerCell < 1 {
		errs = append(errs, fmt.Errorf("pixels per cell must be at least 1, got %d", c.PixelsPerCell))
	}
	if c.Rounds < 1 {
		errs = append(errs, fmt.Errorf("rounds must be at least 1, got %d", c.Rounds))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	switch c.LogFormat {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log format must be text or json, got %q", c.LogFormat))
	}
	return errs
}

// ExportSet returns the sorted, de-duplicated generations to save as stills.
func (c *Config) ExportSet() ([]int, error) {
	return ParseExportList(c.Save)
}

// StillsDirectory returns where stills are written.
func (c *Config) StillsDirectory() string {
	if c.StillsDir != "" {
		return c.StillsDir
	}
	return filepath.Dir(c.Output)
}

// ParseExportList parses a comma-separated list of 1-based generation
// indices such as "1,4,16". Empty items are skipped.
func ParseExportList(s string) ([]int, error) {
	out, err := parseExportList(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrConfig, err)
	}
	return out, nil
}

func parseExportList(s string) ([]int, error) {
	seen := map[int]bool{}
	var out []int
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		k, err := strconv.Atoi(item)
		if err != nil {
			return nil, fmt.Errorf("save list item %q is not a number", item)
		}
		if k < 1 {
			return nil, fmt.Errorf("save list item %d must be at least 1", k)
		}
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Ints(out)
	return out, nil
}

func configError(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", core.ErrConfig, errors.Join(errs...))
}
