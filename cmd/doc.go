// Package cmd implements the command-line interface of dGrid. It provides
// commands for hosting caches and for administrating their regions remotely.
//
// The package is organized into several subpackages:
//
//   - serve: Starts a process hosting one or more caches
//   - region: Admin commands to get and create regions (get, create-root, create-sub, perf)
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// Every flag can also be set by an environment variable DGRID_<FLAG> with dashes
// replaced by underscores (e.g. DGRID_LOG_LEVEL=debug). Variables are also read
// from the files .env and .env.local.
//
// See dgrid -help for a list of all commands.
package cmd
