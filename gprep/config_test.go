package gprep

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	. "github.com/janelia-flyem/go/gocheck"
)

type ConfigSuite struct{}

var _ = Suite(&ConfigSuite{})

const testConfig = `
[logging]
logfile = "logs/gprep.log"
max_log_size = 10
max_log_age = 2

[progress]
interval = 500

[output]
compression = "zstd"
level = 3
`

func (s *ConfigSuite) TestLoadConfig(c *C) {
	dir := c.MkDir()
	fname := filepath.Join(dir, "gprep.toml")
	c.Assert(os.WriteFile(fname, []byte(testConfig), 0644), IsNil)

	cfg, err := LoadConfig(fname)
	c.Assert(err, IsNil)
	c.Assert(cfg.Logging.Logfile, Equals, filepath.Join(dir, "logs", "gprep.log"))
	c.Assert(cfg.Logging.MaxSize, Equals, 10)
	c.Assert(cfg.Logging.MaxAge, Equals, 2)
	c.Assert(cfg.Progress.Interval, Equals, 500)
	c.Assert(cfg.Output.Compression, Equals, "zstd")
	c.Assert(cfg.Output.Level, Equals, 3)
}

func (s *ConfigSuite) TestLoadConfigDefaults(c *C) {
	dir := c.MkDir()
	fname := filepath.Join(dir, "empty.toml")
	c.Assert(os.WriteFile(fname, []byte("[output]\nlevel = 1\n"), 0644), IsNil)

	cfg, err := LoadConfig(fname)
	c.Assert(err, IsNil)
	c.Assert(cfg.Progress.Interval, Equals, DefaultProgressInterval)
	c.Assert(cfg.Logging.Logfile, Equals, "")
	c.Assert(cfg.Output.Compression, Equals, "")
}

func (s *ConfigSuite) TestLoadConfigErrors(c *C) {
	_, err := LoadConfig("")
	c.Assert(err, NotNil)

	dir := c.MkDir()
	bad := filepath.Join(dir, "bad.toml")
	c.Assert(os.WriteFile(bad, []byte("[progress\ninterval = 3"), 0644), IsNil)
	_, err = LoadConfig(bad)
	c.Assert(err, ErrorMatches, "could not decode TOML config.*")

	neg := filepath.Join(dir, "neg.toml")
	c.Assert(os.WriteFile(neg, []byte("[progress]\ninterval = -4\n"), 0644), IsNil)
	_, err = LoadConfig(neg)
	c.Assert(err, ErrorMatches, "bad \\[progress\\] interval.*")
}

func (s *ConfigSuite) TestConvertToAbsolute(c *C) {
	path, err := ConvertToAbsolute("/var/log/x.log", "/etc")
	c.Assert(err, IsNil)
	c.Assert(path, Equals, "/var/log/x.log")

	path, err = ConvertToAbsolute("x.log", "/etc/gprep")
	c.Assert(err, IsNil)
	c.Assert(path, Equals, "/etc/gprep/x.log")
}

type ProgressSuite struct{}

var _ = Suite(&ProgressSuite{})

func (s *ProgressSuite) TestProgressReports(c *C) {
	var reported []int
	p := NewProgress("test pass", 3)
	p.OnReport(func(name string, count int, elapsed time.Duration) {
		c.Check(name, Equals, "test pass")
		reported = append(reported, count)
	})
	for i := 0; i < 10; i++ {
		p.Incr()
	}
	c.Assert(reported, DeepEquals, []int{3, 6, 9})
	c.Assert(p.Count(), Equals, 10)
	c.Assert(p.Done(), Equals, 10)
}

func (s *ProgressSuite) TestProgressDisabled(c *C) {
	calls := 0
	p := NewProgress("quiet", 0)
	p.OnReport(func(string, int, time.Duration) { calls++ })
	for i := 0; i < 5; i++ {
		p.Incr()
	}
	c.Assert(calls, Equals, 0)
	c.Assert(rate(10, 0), Equals, int64(10))
	c.Assert(rate(10, 2*time.Second), Equals, int64(5))
}

type LogSuite struct{}

var _ = Suite(&LogSuite{})

func (s *LogSuite) TestRotatingLogFile(c *C) {
	prev := LogMode()
	defer SetLogMode(prev)
	SetLogMode(InfoMode)

	logfile := filepath.Join(c.MkDir(), "gprep.log")
	cfg := LogConfig{Logfile: logfile, MaxSize: 1, MaxAge: 1}
	c.Check(LogToFile(), Equals, false)
	cfg.SetLogger()
	c.Check(LogToFile(), Equals, true)
	Infof("wrote %d edges\n", 42)
	Debugf("not shown at info level\n")
	NewTimeLog().Infof("pass finished")
	Shutdown()
	c.Check(LogToFile(), Equals, false)

	data, err := os.ReadFile(logfile)
	c.Assert(err, IsNil)
	c.Check(strings.Contains(string(data), "INFO wrote 42 edges"), Equals, true)
	c.Check(strings.Contains(string(data), "not shown"), Equals, false)
	c.Check(strings.Contains(string(data), "INFO pass finished: "), Equals, true)
}

func (s *LogSuite) TestLogMode(c *C) {
	prev := LogMode()
	defer SetLogMode(prev)
	SetLogMode(SilentMode)
	c.Assert(LogMode(), Equals, SilentMode)
}
