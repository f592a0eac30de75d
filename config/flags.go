package config

import "flag"

// SetFlagOverrides will check the '-log' and '-config' command line flags
// and override the given string pointers if they are set.
// If the log flag is set to "dev", the given log var will be set to "".
func SetFlagOverrides(log, configLocation *string) {
	// logCLI is meant to declare an application logging location.
	logCLI := flag.String("log", "", "Application log location")
	// configCLI is meant to declare a JSON config file location.
	configCLI := flag.String("config", "", "JSON config file location")

	flag.Parse()

	// if a user passes in 'dev' log flag, override the
	// App log to signal for stderr logging.
	if *logCLI != "" {
		*log = *logCLI
		if *logCLI == "dev" {
			*log = ""
		}
	}

	if *configCLI != "" {
		*configLocation = *configCLI
	}
}
