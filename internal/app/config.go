package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/peterbourgon/ff/v4/ffyaml"

	"github.com/camdeck/darkroom/internal/logging"
)

type Config struct {
	// StartURL is the location the console opens on; its query string carries
	// the navigation state for deep links.
	StartURL string

	PageSize     int
	SamplePhotos int

	LongPress     time.Duration
	MoveThreshold int
	DragSelect    bool

	DataDir string
	Debug   bool
	Logging logging.Options

	Version bool
}

// set config in order of precedence:
// 1. flags > 2. env vars > 3. config file
func Parse(stderr io.Writer, args []string) (Config, error) {
	var cfg Config

	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("retrieving user's home directory: %w", err)
	}
	defaultDataDir := filepath.Join(home, ".darkroom")
	defaultConfigFile := filepath.Join(home, ".darkroom.yaml")

	fs := ff.NewFlagSet("darkroom")
	fs.StringVar(&cfg.StartURL, 'u', "url", "darkroom:///library", "The location to open the console on.")
	fs.IntVar(&cfg.PageSize, 'n', "page-size", 24, "Photos per page.")
	fs.IntVar(&cfg.SamplePhotos, 0, "sample-photos", 150, "Number of sample photos to generate when no remote store is configured.")
	fs.DurationVar(&cfg.LongPress, 0, "long-press", 250*time.Millisecond, "Hold duration before a press becomes a selection.")
	fs.IntVar(&cfg.MoveThreshold, 0, "move-threshold", 6, "Pointer travel in cells that cancels a pending press.")
	fs.BoolVar(&cfg.DragSelect, 0, "drag-select", "Promote a press to a selection on pointer travel instead of cancelling it.")
	fs.StringVar(&cfg.DataDir, 0, "data-dir", defaultDataDir, "Directory in which to store logs.")
	fs.BoolVar(&cfg.Debug, 'd', "debug", "Log bubbletea messages to messages.log")
	fs.BoolVar(&cfg.Version, 'v', "version", "Print version.")
	_ = fs.String('c', "config", defaultConfigFile, "Path to config file.")

	{
		usage := fmt.Sprintf("Logging level (valid: %s).", strings.Join(logging.ValidLevels(), ","))
		fs.StringEnumVar(&cfg.Logging.Level, 'l', "log-level", usage, logging.ValidLevels()...)
	}

	err = ff.Parse(fs, args,
		ff.WithEnvVarPrefix("DARKROOM"),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ffyaml.Parse),
		ff.WithConfigAllowMissingFile(),
	)
	if err != nil {
		// ff.Parse returns an error if there is an error or if -h/--help is
		// passed; in either case print flag usage in addition to error message.
		fmt.Fprintln(stderr, ffhelp.Flags(fs))
		return Config{}, err
	}

	return cfg, nil
}
