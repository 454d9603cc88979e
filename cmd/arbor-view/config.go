package main

import (
	"os"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/pelletier/go-toml/v2"
	"github.com/phanxgames/arbor"
	"github.com/phanxgames/arbor/view"
)

// configFileEnv names the environment variable holding the optional TOML
// config file. File values are applied before flags and environment
// variables, which take precedence.
const configFileEnv = "ARBOR_CONFIG_FILE"

type config struct {
	Title         string  `cli:""        env:"ARBOR_TITLE"          toml:"title"          help:"Window title."`
	Width         int     `cli:""        env:"ARBOR_WIDTH"          toml:"width"          help:"Window width in pixels."`
	Height        int     `cli:""        env:"ARBOR_HEIGHT"         toml:"height"         help:"Window height in pixels."`
	Cubes         int     `cli:""        env:"ARBOR_CUBES"          toml:"cubes"          help:"Number of cubes to lay out."`
	Spacing       float64 `cli:""        env:"ARBOR_SPACING"        toml:"spacing"        help:"Distance between cube centers."`
	AxisLength    float64 `cli:""        env:"ARBOR_AXIS_LENGTH"    toml:"axis_length"    help:"Length of the axis gizmo lines."`
	AxisStep      float64 `cli:""        env:"ARBOR_AXIS_STEP"      toml:"axis_step"      help:"Wheel step of the axis gizmos (radians or units)."`
	PickTolerance float64 `cli:""        env:"ARBOR_PICK_TOLERANCE" toml:"pick_tolerance" help:"Pick distance in pixels for lines."`
	ShowFPS       bool    `cli:""        env:"ARBOR_SHOW_FPS"       toml:"show_fps"       help:"Show FPS and TPS."`
	ScreenshotDir string  `cli:""        env:"ARBOR_SCREENSHOT_DIR" toml:"screenshot_dir" help:"Directory for F12 screenshots."`
	TestScript    string  `cli:""        env:"ARBOR_TEST_SCRIPT"    toml:"test_script"    help:"JSON script of injected input and screenshots. The viewer exits when it completes."`
	ECS           bool    `cli:""        env:"ARBOR_ECS"            toml:"ecs"            help:"Forward dispatched events to a Donburi world and log them."`
	Debug         bool    `cli:""        env:"ARBOR_DEBUG"          toml:"debug"          help:"Enable scene graph debug checks."`
	MetricsAddr   string  `cli:""        env:"ARBOR_METRICS_ADDR"   toml:"metrics_addr"   help:"Listening address for Prometheus metrics. Empty disables."`
	LogLevel      string  `cli:""        env:"ARBOR_LOG_LEVEL"      toml:"log_level"      help:"Log level (debug|info|warning|error)."`
	LogIndent     bool    `cli:""        env:"ARBOR_LOG_INDENT"     toml:"log_indent"     help:"Indent logs."`
	Version       bool    `cli:""        env:"-"                    toml:"-"              help:"Show version."`
	Help          bool    `cli:""        env:"-"                    toml:"-"              help:"Show help."`
}

func defaultConfig() config {
	vc := view.DefaultConfig()
	return config{
		Title:         vc.Title,
		Width:         vc.Width,
		Height:        vc.Height,
		Cubes:         3,
		Spacing:       2,
		AxisLength:    1,
		AxisStep:      arbor.DefaultAxisStep,
		PickTolerance: arbor.DefaultPickTolerance,
		ScreenshotDir: vc.ScreenshotDir,
		LogLevel:      logs.InfoLevel.String(),
	}
}

// loadConfigFile decodes the TOML file at path over conf. Keys absent from
// the file keep their current values.
func loadConfigFile(path string, conf *config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.New("reading config file failed").
			WithTag("file_name", path).
			Wrap(err)
	}
	if err := toml.Unmarshal(data, conf); err != nil {
		return errors.New("decoding config file failed").
			WithTag("file_name", path).
			Wrap(err)
	}
	return nil
}

// loadTestRunner reads and parses the JSON test script at path.
func loadTestRunner(path string) (*view.TestRunner, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("reading test script failed").
			WithTag("file_name", path).
			Wrap(err)
	}
	runner, err := view.LoadTestScript(data)
	if err != nil {
		return nil, errors.New("loading test script failed").
			WithTag("file_name", path).
			Wrap(err)
	}
	return runner, nil
}

func validateConfig(conf config) error {
	if conf.Width <= 0 || conf.Height <= 0 {
		return errors.New("window size must be positive").
			WithTag("width", conf.Width).
			WithTag("height", conf.Height)
	}
	if conf.Cubes < 0 {
		return errors.New("cube count cannot be negative").
			WithTag("cubes", conf.Cubes)
	}
	if conf.AxisStep <= 0 {
		return errors.New("axis step must be positive").
			WithTag("axis_step", conf.AxisStep)
	}
	return nil
}

func (conf config) viewConfig() view.Config {
	vc := view.DefaultConfig()
	vc.Title = conf.Title
	vc.Width = conf.Width
	vc.Height = conf.Height
	vc.PickTolerance = conf.PickTolerance
	vc.ShowFPS = conf.ShowFPS
	vc.ScreenshotDir = conf.ScreenshotDir
	return vc
}
