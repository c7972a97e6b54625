package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Input    string `yaml:"input"`
	XCol     int    `yaml:"x_col"`
	YCol     int    `yaml:"y_col"`
	LabelCol int    `yaml:"label_col"`

	Synthetic int     `yaml:"synthetic"`
	Seed      uint64  `yaml:"seed"`
	StdDev    float64 `yaml:"std_dev"`

	K      int     `yaml:"k"`
	Margin float64 `yaml:"margin"`
	Step   float64 `yaml:"step"`

	Title      string   `yaml:"title"`
	XLabel     string   `yaml:"x_label"`
	YLabel     string   `yaml:"y_label"`
	Legend     bool     `yaml:"legend"`
	ClassNames []string `yaml:"class_names"`
	Light      []string `yaml:"light"`
	Bold       []string `yaml:"bold"`

	Output  string  `yaml:"output"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	GridCSV string  `yaml:"grid_csv"`

	Watch    bool   `yaml:"watch"`
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`

	ConfigFile string `yaml:"-"`
}

func Default() *Config {
	return &Config{
		XCol:      0,
		YCol:      1,
		LabelCol:  -1,
		Synthetic: 50,
		Seed:      1,
		StdDev:    0.3,
		K:         15,
		Margin:    0.5,
		Step:      0.02,
		XLabel:    "Sepal length",
		YLabel:    "Sepal width",
		Light:     []string{"#FFAAAA", "#AAFFAA", "#AAAAFF"},
		Bold:      []string{"#FF0000", "#00FF00", "#0000FF"},
		Output:    "boundary.png",
		Width:     10,
		Height:    10,
		LogLevel:  "info",
	}
}

// Parse reads the configuration from the command line and exits on error.
func Parse() *Config {
	cfg, err := Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return cfg
}

// Load builds a Config from defaults, then the YAML file named by -config
// if any, then the flags in args. Flags given explicitly always win over
// the file.
func Load(args []string) (*Config, error) {
	cfg := Default()
	fs := newFlagSet(cfg)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.ConfigFile != "" {
		path := cfg.ConfigFile
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
		cfg.ConfigFile = path
		// re-apply the command line on top of the file
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
	}
	return cfg, cfg.Validate()
}

func loadFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(cfg); err != nil {
		return fmt.Errorf("config: decode %s: %w", path, err)
	}
	return nil
}

func newFlagSet(cfg *Config) *flag.FlagSet {
	fs := flag.NewFlagSet("decision-boundary", flag.ContinueOnError)

	fs.StringVar(&cfg.ConfigFile, "config", "", "YAML configuration file")
	fs.StringVar(&cfg.Input, "input", cfg.Input, "labeled dataset file; empty generates synthetic data")
	fs.IntVar(&cfg.XCol, "x-col", cfg.XCol, "column used as first feature")
	fs.IntVar(&cfg.YCol, "y-col", cfg.YCol, "column used as second feature")
	fs.IntVar(&cfg.LabelCol, "label-col", cfg.LabelCol, "column holding class index, negative counts from the end")
	fs.IntVar(&cfg.Synthetic, "synthetic", cfg.Synthetic, "points per class when no input is given")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed for synthetic data")
	fs.Float64Var(&cfg.StdDev, "std", cfg.StdDev, "spread of synthetic clusters")
	fs.IntVar(&cfg.K, "k", cfg.K, "number of neighbours")
	fs.Float64Var(&cfg.Margin, "margin", cfg.Margin, "margin around the data bounding box")
	fs.Float64Var(&cfg.Step, "step", cfg.Step, "grid step in both axes")
	fs.StringVar(&cfg.Title, "title", cfg.Title, "plot title")
	fs.StringVar(&cfg.XLabel, "x-label", cfg.XLabel, "x axis label")
	fs.StringVar(&cfg.YLabel, "y-label", cfg.YLabel, "y axis label")
	fs.BoolVar(&cfg.Legend, "legend", cfg.Legend, "draw a class legend")
	fs.StringVar(&cfg.Output, "output", cfg.Output, "output file, format from extension (png, pdf, svg, ...)")
	fs.Float64Var(&cfg.Width, "width", cfg.Width, "figure width in inches")
	fs.Float64Var(&cfg.Height, "height", cfg.Height, "figure height in inches")
	fs.StringVar(&cfg.GridCSV, "grid-csv", cfg.GridCSV, "also write the predicted grid to this CSV file")
	fs.BoolVar(&cfg.Watch, "watch", cfg.Watch, "re-render whenever the input file changes")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "also write logs to this rotated file")

	return fs
}

func (c *Config) Validate() error {
	var errs []error
	if c.K < 1 {
		errs = append(errs, fmt.Errorf("k must be positive, got %d", c.K))
	}
	if c.Step <= 0 {
		errs = append(errs, fmt.Errorf("step must be positive, got %v", c.Step))
	}
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("figure size must be positive, got %vx%v", c.Width, c.Height))
	}
	if c.Input == "" && c.Synthetic < 1 {
		errs = append(errs, errors.New("either -input or a positive -synthetic is required"))
	}
	if c.Watch && c.Input == "" {
		errs = append(errs, errors.New("-watch needs -input"))
	}
	if c.Output == "" {
		errs = append(errs, errors.New("output file is required"))
	}
	return errors.Join(errs...)
}

func (c *Config) ToString() string {
	var sb strings.Builder
	out, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("%+v", *c)
	}
	sb.Write(out)
	if c.ConfigFile != "" {
		fmt.Fprintf(&sb, "# loaded from %s\n", c.ConfigFile)
	}
	return sb.String()
}
