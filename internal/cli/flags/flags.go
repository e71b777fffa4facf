// Package flags provides common flag helpers for the CLI.
package flags

import "flag"

// AddRootFlag adds --root and -r flags for workspace root.
func AddRootFlag(fs *flag.FlagSet) *string {
	root := fs.String("root", ".", "workspace root")
	fs.StringVar(root, "r", ".", "workspace root (shorthand)")
	return root
}

// AddVerboseFlag adds --verbose and -v flags for verbose output.
func AddVerboseFlag(fs *flag.FlagSet) *bool {
	verbose := fs.Bool("verbose", false, "show detailed output")
	fs.BoolVar(verbose, "v", false, "show detailed output (shorthand)")
	return verbose
}

// AddDebugFlag adds a --debug flag for debug output.
func AddDebugFlag(fs *flag.FlagSet) *bool {
	return fs.Bool("debug", false, "show debug information")
}

// AddForceFlag adds --force and -f flags for overwrite operations.
func AddForceFlag(fs *flag.FlagSet) *bool {
	force := fs.Bool("force", false, "overwrite existing files")
	fs.BoolVar(force, "f", false, "overwrite existing files (shorthand)")
	return force
}

// AddLimitFlag adds --limit and -l flags for result limits.
func AddLimitFlag(fs *flag.FlagSet, defaultValue int) *int {
	limit := fs.Int("limit", defaultValue, "maximum results")
	fs.IntVar(limit, "l", defaultValue, "maximum results (shorthand)")
	return limit
}
