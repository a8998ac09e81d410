// Package config provides configuration structures and utilities for wikilens.
// It defines the options shared by the commands (input files, report format,
// history database location) and the optional per-instance settings file.
package config
