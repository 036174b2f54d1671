// Package version identifies the tokiwen build. The string variables can be
// set with -ldflags "-X tokiwen/internal/version.Version=...".
package version

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/fatih/color"

	"tokiwen/internal/isa"
)

var (
	// Version is the semantic version of the toolchain.
	Version = "0.1.0-dev"
	// GitCommit is the commit the binary was built from, if known.
	GitCommit = ""
	// BuildDate is an ISO-8601 build timestamp, if known.
	BuildDate = ""
)

var (
	nameColor    = color.New(color.FgCyan, color.Bold)
	versionColor = color.New(color.FgYellow, color.Bold)
	dimColor     = color.New(color.Faint)
)

// Fingerprint changes whenever compiled output may change: the toolchain
// version or the bytecode format. Cached programs are keyed by it.
func Fingerprint() string {
	return fmt.Sprintf("tokiwen/%s+%s isa/%d abi/%d", Version, GitCommit, isa.FormatVersion, isa.ABIVersion)
}

// Banner is the `tokiwen version` output.
func Banner() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", nameColor.Sprint("tokiwen"), versionColor.Sprint(Version))
	fmt.Fprintf(&sb, "  bytecode format %d, syscall abi %d\n", isa.FormatVersion, isa.ABIVersion)
	if GitCommit != "" {
		fmt.Fprintf(&sb, "  commit  %s\n", dimColor.Sprint(GitCommit))
	}
	if BuildDate != "" {
		fmt.Fprintf(&sb, "  built   %s\n", dimColor.Sprint(BuildDate))
	}
	fmt.Fprintf(&sb, "  go      %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return sb.String()
}
