package main

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (missing files, invalid config)
	ExitDataError   = 3 // Data error (CV document lacks required structure or is not valid YAML)
)
