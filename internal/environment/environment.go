// Package environment exposes values stamped into release builds.
package environment

import "os"

// versionDefault is replaced in release builds.
var versionDefault = "REPL_VERSION"

// AppVersion returns the release version. TK_VERSION overrides it for local builds.
func AppVersion() string {
	if version, present := os.LookupEnv("TK_VERSION"); present && version != "" {
		return version
	}
	return versionDefault
}
