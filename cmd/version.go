package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordiz/internal/selfupdate"
)

// version is stamped by release builds with
// -ldflags "-X github.com/abhisek/wordiz/cmd.version=v1.2.3".
var version = selfupdate.DevVersion

// currentVersion is the stamped version, or the module version recorded by
// `go install github.com/abhisek/wordiz@vX.Y.Z`.
func currentVersion() string {
	return resolveVersion(version, debug.ReadBuildInfo)
}

func resolveVersion(stamped string, buildInfo func() (*debug.BuildInfo, bool)) string {
	if !selfupdate.IsDevBuild(stamped) {
		return stamped
	}
	if info, ok := buildInfo(); ok && !selfupdate.IsDevBuild(info.Main.Version) {
		return info.Main.Version
	}
	return stamped
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the wordiz version",
	Run: func(cmd *cobra.Command, args []string) {
		v := currentVersion()
		if selfupdate.IsDevBuild(v) {
			v += " (development build, `wordiz update` is disabled)"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wordiz %s\n%s %s/%s\n", v, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}
