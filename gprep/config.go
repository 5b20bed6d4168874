package gprep

import (
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultProgressInterval is the number of records between progress log lines.
const DefaultProgressInterval = 1000000

// Config is the parsed TOML configuration shared by all gprep commands.
type Config struct {
	Logging  LogConfig
	Progress ProgressConfig
	Output   OutputConfig
}

// ProgressConfig sets how often long-running passes report progress.
type ProgressConfig struct {
	// Interval is the number of records between progress lines.  Zero disables
	// periodic progress but summary lines are still logged.
	Interval int
}

// OutputConfig sets the codec for compressed output files.
type OutputConfig struct {
	// Compression is one of "gzip", "zstd", "snappy", "none", or empty to choose
	// from the output file extension.
	Compression string

	// Level is the codec-specific compression level.  Zero uses the codec default.
	Level int
}

// DefaultConfig returns the configuration used when no TOML file is given.
func DefaultConfig() *Config {
	return &Config{
		Progress: ProgressConfig{Interval: DefaultProgressInterval},
	}
}

// LoadConfig decodes a TOML configuration file.  Settings not present in the file
// keep their defaults.
func LoadConfig(filename string) (*Config, error) {
	if filename == "" {
		return nil, fmt.Errorf("no TOML configuration file provided")
	}
	c := DefaultConfig()
	md, err := toml.DecodeFile(filename, c)
	if err != nil {
		return nil, fmt.Errorf("could not decode TOML config %q: %v", filename, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		Warningf("Ignoring unknown settings in %s: %v\n", filename, undecoded)
	}
	if err := c.convertPathsToAbsolute(filename); err != nil {
		return nil, fmt.Errorf("could not convert relative paths to absolute paths in TOML config: %v", err)
	}
	if c.Progress.Interval < 0 {
		return nil, fmt.Errorf("bad [progress] interval %d in %s", c.Progress.Interval, filename)
	}
	Debugf("config from %s: %+v\n", filename, *c)
	return c, nil
}

// Some settings in the TOML can be given as relative paths.
// This function converts them in-place to absolute paths,
// assuming the given paths were relative to the TOML file's own directory.
func (c *Config) convertPathsToAbsolute(configPath string) error {
	configDir := filepath.Dir(configPath)

	// [logging].logfile
	if c.Logging.Logfile != "" {
		path, err := ConvertToAbsolute(c.Logging.Logfile, configDir)
		if err != nil {
			return fmt.Errorf("Error converting logfile setting to absolute path")
		}
		c.Logging.Logfile = path
	}
	return nil
}

// ConvertToAbsolute returns path unchanged if absolute, otherwise joined onto baseDir
// and made absolute.
func ConvertToAbsolute(path, baseDir string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}
	return filepath.Abs(filepath.Join(baseDir, path))
}
