// Package config holds the application-wide settings: workspace and template
// locations, editor and logger preferences, and network proxy options. A
// Store loads them with viper, validates them with struct tags, persists them
// as YAML and notifies subscribers after each change.
package config
