// Package config holds process-wide constants and mode flags shared by the
// checker, the module driver, and the CLI.
package config

// Version is the current rzkcore version.
var Version = "0.1.0"

// SourceFileExt is the canonical source extension for rzk modules.
const SourceFileExt = ".rzk"

// SourceFileExtensions are all recognized source file extensions.
var SourceFileExtensions = []string{".rzk"}

// TrimSourceExt removes the recognized source extension from a filename.
// Returns the original string if no extension matches.
func TrimSourceExt(name string) string {
	if len(name) >= len(SourceFileExt) && name[len(name)-len(SourceFileExt):] == SourceFileExt {
		return name[:len(name)-len(SourceFileExt)]
	}
	return name
}

// HasSourceExt returns true if the path ends with a recognized source extension.
func HasSourceExt(path string) bool {
	return len(path) >= len(SourceFileExt) && path[len(path)-len(SourceFileExt):] == SourceFileExt
}

// IsTestMode marks a process running under `go test`. Nothing in this
// module sets or reads it: term rendering prints generated hole/variable
// names (e.g. "?h3") as they are, without normalizing them.
var IsTestMode = false

// IsLSPMode marks a process running as an editor-integration
// collaborator (§6). Like IsTestMode, nothing in this module sets or
// reads it.
var IsLSPMode = false
