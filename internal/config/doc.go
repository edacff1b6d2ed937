// Package config manages the persisted aoctool settings stored at
// ~/.config/aoctool/config.yaml: the adventofcode.com session key and the
// per-year path set (input files, implementation directory, day templates).
// The configuration is an explicit value loaded once per command and saved
// once at the end; there is no package-level singleton. It also reconciles
// paths requested on the command line against previously persisted values,
// refusing contradictory re-configuration.
package config
