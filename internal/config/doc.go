// Package config loads and validates client configuration.
//
// Configuration is resolved in increasing precedence from built-in
// defaults, an optional YAML config file, FORUMCTL_* environment
// variables, and command-line flags:
//
//	cfg, err := config.Load(flagSet)
//	if err != nil {
//	    ...
//	}
//	if err := cfg.Validate(); err != nil {
//	    // err joins every failed check
//	}
//
// # Environment Variables
//
//	FORUMCTL_API_BASE_URL          backend base URL (default http://localhost:9090/api)
//	FORUMCTL_API_TIMEOUT           per-request timeout (default 15s)
//	FORUMCTL_API_PAGE_SIZE         default page size for list commands
//	FORUMCTL_SESSION_TOKEN_PATH    where the bearer token persists across runs
//	FORUMCTL_UPLOAD_MAX_FILE_SIZE  attachment size ceiling in bytes
//	FORUMCTL_LOG_LEVEL             debug, info, warn, or error
//
// # Config File
//
// A config.yaml in the user config dir (or the working directory) may set
// the same keys with dots in place of underscores:
//
//	api:
//	  base_url: https://forum.example.com/api
//	  page_size: 25
package config
