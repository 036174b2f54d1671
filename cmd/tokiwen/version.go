package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tokiwen/internal/isa"
	"tokiwen/internal/version"
)

type versionPayload struct {
	Tool          string `json:"tool"`
	Version       string `json:"version"`
	GitCommit     string `json:"git_commit,omitempty"`
	BuildDate     string `json:"build_date,omitempty"`
	FormatVersion int    `json:"format_version"`
	ABIVersion    int    `json:"abi_version"`
	Fingerprint   string `json:"fingerprint"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show toolchain version and bytecode format",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			return fmt.Errorf("failed to get format flag: %w", err)
		}
		switch format {
		case "pretty":
			color.NoColor = !useColor(cmd, os.Stdout)
			_, err = fmt.Fprint(os.Stdout, version.Banner())
			return err
		case "json":
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(versionPayload{
				Tool:          "tokiwen",
				Version:       version.Version,
				GitCommit:     version.GitCommit,
				BuildDate:     version.BuildDate,
				FormatVersion: int(isa.FormatVersion),
				ABIVersion:    int(isa.ABIVersion),
				Fingerprint:   version.Fingerprint(),
			})
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
		}
	},
}

func init() {
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}
