package config

import "github.com/spf13/pflag"

// flagSet wraps the server's command-line flags. Values are parsed into a
// scratch Config and copied onto the real one only for flags that were set
// explicitly, so flags win over every other source without clobbering them
// with flag defaults.
//
// Supported flags:
//
//	-c, --config string          JSON config file
//	    --env-file string        dotenv file (default ".env")
//	-a, --http-addr string       HTTP bind address (e.g. ":5000")
//	-g, --grpc-addr string       gRPC health bind address, "" disables
//	-b, --backend string         postgres | memory
//	-d, --database-dsn string    PostgreSQL DSN
//	-s, --secret string          JWT HMAC secret key
//	-l, --log-level string       debug | info | warn | error
//	    --shutdown-timeout dur   graceful shutdown budget
//	    --s3-bucket string       bucket for CSV exports
//	    --s3-endpoint string     S3 base endpoint
type flagSet struct {
	fs         *pflag.FlagSet
	scratch    Config
	configPath string
	envFile    string
}

func newFlagSet() *flagSet {
	f := &flagSet{fs: pflag.NewFlagSet("server", pflag.ContinueOnError)}

	f.fs.StringVarP(&f.configPath, "config", "c", "", "path to JSON config file")
	f.fs.StringVar(&f.envFile, "env-file", ".env", "path to dotenv file")
	f.fs.StringVarP(&f.scratch.EndpointAddrHTTP, "http-addr", "a", "", "HTTP bind address")
	f.fs.StringVarP(&f.scratch.EndpointAddrGRPC, "grpc-addr", "g", "", "gRPC health bind address")
	f.fs.StringVarP(&f.scratch.DataBackend, "backend", "b", "", "data backend (postgres|memory)")
	f.fs.StringVarP(&f.scratch.DatabaseDSN, "database-dsn", "d", "", "database DSN")
	f.fs.StringVarP(&f.scratch.SecretKey, "secret", "s", "", "JWT secret key")
	f.fs.StringVarP(&f.scratch.LogLevel, "log-level", "l", "", "log level")
	f.fs.DurationVar(&f.scratch.ShutdownTimeout, "shutdown-timeout", 0, "graceful shutdown timeout")
	f.fs.StringVar(&f.scratch.S3Bucket, "s3-bucket", "", "S3 bucket for exports")
	f.fs.StringVar(&f.scratch.S3BaseEndpoint, "s3-endpoint", "", "S3 base endpoint")

	return f
}

func (f *flagSet) parse(args []string) error {
	return f.fs.Parse(args)
}

// apply copies explicitly set flags onto dst.
func (f *flagSet) apply(dst *Config) {
	f.fs.Visit(func(fl *pflag.Flag) {
		switch fl.Name {
		case "http-addr":
			dst.EndpointAddrHTTP = f.scratch.EndpointAddrHTTP
		case "grpc-addr":
			dst.EndpointAddrGRPC = f.scratch.EndpointAddrGRPC
		case "backend":
			dst.DataBackend = f.scratch.DataBackend
		case "database-dsn":
			dst.DatabaseDSN = f.scratch.DatabaseDSN
		case "secret":
			dst.SecretKey = f.scratch.SecretKey
		case "log-level":
			dst.LogLevel = f.scratch.LogLevel
		case "shutdown-timeout":
			dst.ShutdownTimeout = f.scratch.ShutdownTimeout
		case "s3-bucket":
			dst.S3Bucket = f.scratch.S3Bucket
		case "s3-endpoint":
			dst.S3BaseEndpoint = f.scratch.S3BaseEndpoint
		}
	})
}
