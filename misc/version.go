// Package misc keeps build time information about the program.
package misc

// Set with -ldflags "-X tabular/misc.version=... -X tabular/misc.gitHash=..."
var (
	version = "dev"
	gitHash = "unknown"
)

const appName = "tabular"

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
