package version

var (
	// GitCommit is the current HEAD, set with ldflags at build time.
	GitCommit string

	// Version is the built software's version.
	Version = DAPISemVer
)

func init() {
	if GitCommit != "" {
		Version += "-" + GitCommit
	}
}

// DAPISemVer is the current semantic version of the gateway.
const DAPISemVer = "0.1.0"
