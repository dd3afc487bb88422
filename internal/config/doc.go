// Package config handles YAML configuration loading with environment variable substitution.
//
// Configuration files support ${VAR} syntax for environment variable interpolation.
// A .env file next to the working directory is loaded first when present. Running
// without a config file yields the defaults, which point at the public exchange
// and store credentials in team-credentials.json.
package config
