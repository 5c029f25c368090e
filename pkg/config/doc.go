// Package config loads settings for the Dovetale client and CLI.
//
// Values are merged from several sources. Later sources win:
//
//   - built-in defaults (DefaultConfig)
//   - a YAML file (.dovetale.yaml, ~/.config/dovetale/config.yaml, ...)
//   - .env files loaded into the environment
//   - DOVETALE_* environment variables
//   - command line flags
//
// Example:
//
//	cfg, err := config.Load("", map[string]interface{}{
//	    "client-id":     "my-id",
//	    "client-secret": "my-secret",
//	    "log-level":     "debug",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
