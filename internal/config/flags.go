package config

import (
	"flag"
	"os"
	"time"
)

// ParseFlags parses all configuration flags from the process arguments.
//
// Flags:
//
//	-a server base URL, e.g. http://192.168.1.10:5000
//	-d sqlite DSN for the local cache/outbox database
//	-c/-config json file path with configs
//	-probe-path reachability endpoint path
//	-probe-interval time between connectivity probes (e.g. "5s")
//	-probe-timeout single probe timeout (e.g. "2s")
//	-request-timeout full request timeout (e.g. "8s")
//	-connect-timeout connection attempt timeout (e.g. "5s")
//	-max-retries retry budget per queued mutation
//	-drain-batch max entries replayed per drain cycle
//	-cache-entries durable response cache capacity
//	-default-ttl cache lifetime for endpoints without a per-resource
//	entry (e.g. "60m"); per-resource lifetimes are set via the
//	environment or the JSON file
func ParseFlags() *StructuredConfig {
	return parseFlags(flag.CommandLine, os.Args[1:])
}

func parseFlags(fs *flag.FlagSet, args []string) *StructuredConfig {
	var (
		baseURL        string
		databaseDSN    string
		jsonConfigPath string
		probePath      string
		probeInterval  time.Duration
		probeTimeout   time.Duration
		requestTimeout time.Duration
		connectTimeout time.Duration
		maxRetries     int
		drainBatch     int
		cacheEntries   int
		defaultTTL     time.Duration
	)

	fs.StringVar(&baseURL, "a", "", "Server base URL")
	fs.StringVar(&databaseDSN, "d", "", "SQLite DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&probePath, "probe-path", "", "Reachability endpoint path")
	fs.DurationVar(&probeInterval, "probe-interval", 0, "Probe interval (e.g., 5s)")
	fs.DurationVar(&probeTimeout, "probe-timeout", 0, "Probe timeout (e.g., 2s)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 8s)")
	fs.DurationVar(&connectTimeout, "connect-timeout", 0, "Connect timeout (e.g., 5s)")
	fs.IntVar(&maxRetries, "max-retries", 0, "Retry budget per queued mutation")
	fs.IntVar(&drainBatch, "drain-batch", 0, "Max entries replayed per drain cycle")
	fs.IntVar(&cacheEntries, "cache-entries", 0, "Durable response cache capacity")
	fs.DurationVar(&defaultTTL, "default-ttl", 0, "Default cache lifetime (e.g., 60m)")

	_ = fs.Parse(args)

	return &StructuredConfig{
		Server: Server{
			BaseURL:        baseURL,
			RequestTimeout: requestTimeout,
			ConnectTimeout: connectTimeout,
		},
		Probe: Probe{
			Path:     probePath,
			Interval: probeInterval,
			Timeout:  probeTimeout,
		},
		Cache: Cache{
			MaxEntries: cacheEntries,
			DefaultTTL: defaultTTL,
		},
		Outbox: Outbox{
			MaxRetries: maxRetries,
			DrainBatch: drainBatch,
		},
		Storage: Storage{
			DB: DB{DSN: databaseDSN},
		},
		jsonFilePath: jsonConfigPath,
	}
}
