// Package constants defines shared constant values.
package constants

// AppName is the project identifier used in messages and metadata.
const AppName = "translationkeys"

// CommandName is the primary CLI command name.
const CommandName = "translationkeys"
