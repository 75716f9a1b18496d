/*
 * Copyright © 2025 StarCoreSE, All rights reserved.
 */

package definitionhelper

// Version information set by build flags
var (
	// Version is the semantic version of DefinitionHelper
	Version = "1.0.0"

	// GitCommit is the git commit hash (set by build flags)
	GitCommit = "unknown"

	// BuildDate is the build date (set by build flags)
	BuildDate = "unknown"

	// GoVersion is the Go version used to build
	GoVersion = "unknown"
)

// APIVersion is the method table version announced to peer modules.
const APIVersion = 1

// VersionInfo contains version information
type VersionInfo struct {
	Version    string `json:"version"`
	APIVersion int    `json:"apiVersion"`
	GitCommit  string `json:"gitCommit"`
	BuildDate  string `json:"buildDate"`
	GoVersion  string `json:"goVersion"`
}

// GetVersionInfo returns the version information
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:    Version,
		APIVersion: APIVersion,
		GitCommit:  GitCommit,
		BuildDate:  BuildDate,
		GoVersion:  GoVersion,
	}
}
