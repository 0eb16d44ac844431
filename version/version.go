package version

// BuildVersion is the local build version
const BuildVersion = "0.1.0"

// CurrentCommit is set by the Makefile
var CurrentCommit string

func UserVersion() string {
	return BuildVersion + CurrentCommit
}
