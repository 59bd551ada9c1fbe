// Package config manages user-level settings stored at
// ~/.create-react-app/config.yaml, overridable through CRA_* environment
// variables. Settings cover the registry endpoints, the optional cached
// lockfile, and the latest-version check.
package config
