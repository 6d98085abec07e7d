package config

import "github.com/spf13/pflag"

// flagSet parses the CLI flags into a scratch Config; only explicitly set
// flags are copied onto the real one.
//
// Supported flags:
//
//	-c, --config string     JSON config file
//	-a, --server string     API base URL
//	-t, --timeout duration  request timeout
//	    --session string    session database file
type flagSet struct {
	fs         *pflag.FlagSet
	scratch    Config
	configPath string
}

func newFlagSet() *flagSet {
	f := &flagSet{fs: pflag.NewFlagSet("cli", pflag.ContinueOnError)}

	f.fs.StringVarP(&f.configPath, "config", "c", "", "path to JSON config file")
	f.fs.StringVarP(&f.scratch.ServerURL, "server", "a", "", "API base URL")
	f.fs.DurationVarP(&f.scratch.RequestTimeout, "timeout", "t", 0, "request timeout")
	f.fs.StringVar(&f.scratch.SessionFile, "session", "", "session database file")

	return f
}

func (f *flagSet) parse(args []string) error {
	return f.fs.Parse(args)
}

func (f *flagSet) apply(dst *Config) {
	f.fs.Visit(func(fl *pflag.Flag) {
		switch fl.Name {
		case "server":
			dst.ServerURL = f.scratch.ServerURL
		case "timeout":
			dst.RequestTimeout = f.scratch.RequestTimeout
		case "session":
			dst.SessionFile = f.scratch.SessionFile
		}
	})
}
