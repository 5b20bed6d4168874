package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/pprof"

	"github.com/janelia-flyem/gprep/gprep"
	"github.com/janelia-flyem/gprep/pipeline"
	"github.com/janelia-flyem/gprep/stream"
)

// OptionsHelp documents the options shared by all commands.
const OptionsHelp = `
      -config     =string   TOML configuration file for logging, progress and output.
      -compress   =string   Output compression: gzip, zstd, snappy or none.
                            Default chooses by output extension, falling back to gzip.
      -level      =number   Compression level for the chosen codec.
      -progress   =number   Records between progress lines; 0 disables.
      -cpuprofile =string   Write CPU profile to this file.
      -verbose    (flag)    Run in verbose mode.
  -h, -help       (flag)    Show help message
`

// Command describes one gprep executable.
type Command struct {
	Name string

	// Help is printed for -h and when the wrong number of arguments is given.
	Help string

	// NArgs is the required number of positional arguments.
	NArgs int

	// Flags registers command-specific options.  May be nil.
	Flags func(fs *flag.FlagSet)

	// Run executes the command on its positional arguments.
	Run func(args []string, opts pipeline.Options) error
}

type commonFlags struct {
	showHelp   bool
	verbose    bool
	configFile string
	compress   string
	level      int
	progress   int
	cpuprofile string
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.BoolVar(&c.showHelp, "help", false, "")
	fs.BoolVar(&c.showHelp, "h", false, "")
	fs.BoolVar(&c.verbose, "verbose", false, "")
	fs.StringVar(&c.configFile, "config", "", "")
	fs.StringVar(&c.compress, "compress", "", "")
	fs.IntVar(&c.level, "level", 0, "")
	fs.IntVar(&c.progress, "progress", -1, "")
	fs.StringVar(&c.cpuprofile, "cpuprofile", "", "")
}

// options merges the config file with command line overrides.
func (c *commonFlags) options(cfg *gprep.Config) (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()
	opts.ProgressInterval = cfg.Progress.Interval
	if c.progress >= 0 {
		opts.ProgressInterval = c.progress
	}

	compress := cfg.Output.Compression
	if c.compress != "" {
		compress = c.compress
	}
	codec, err := stream.ParseCompression(compress)
	if err != nil {
		return opts, err
	}
	opts.Output.Compression = codec

	opts.Output.Level = cfg.Output.Level
	if c.level != 0 {
		opts.Output.Level = c.level
	}
	return opts, nil
}

// Main parses the command line, runs the command and returns the process exit status.
func (cmd *Command) Main(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	var common commonFlags
	common.register(fs)
	if cmd.Flags != nil {
		cmd.Flags(fs)
	}
	fs.Usage = func() {
		fmt.Fprint(stdout, cmd.Help)
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}
	if common.showHelp || fs.NArg() != cmd.NArgs {
		fs.Usage()
		return gprep.ExitCode(&gprep.UsageError{Msg: "wrong number of arguments"})
	}

	if common.verbose {
		gprep.SetLogMode(gprep.DebugMode)
	}
	cfg := gprep.DefaultConfig()
	if common.configFile != "" {
		var err error
		if cfg, err = gprep.LoadConfig(common.configFile); err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", cmd.Name, err)
			return 1
		}
	}
	cfg.Logging.SetLogger()
	defer gprep.Shutdown()

	opts, err := common.options(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", cmd.Name, err)
		return 1
	}

	if common.cpuprofile != "" {
		f, err := os.Create(common.cpuprofile)
		if err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", cmd.Name, err)
			return 1
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", cmd.Name, err)
			return 1
		}
		defer pprof.StopCPUProfile()
	}

	if err := cmd.Run(fs.Args(), opts); err != nil {
		var ue *gprep.UsageError
		if errors.As(err, &ue) {
			fs.Usage()
		}
		if gprep.LogToFile() {
			gprep.Errorf("%s: %v\n", cmd.Name, err)
		}
		fmt.Fprintf(stderr, "%s: %v\n", cmd.Name, err)
		return gprep.ExitCode(err)
	}
	return 0
}
