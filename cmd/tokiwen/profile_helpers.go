package main

import (
	"github.com/spf13/cobra"

	"tokiwen/internal/prof"
)

// startProfiling starts the profiles requested on the command line, or
// returns a nil session when there are none.
func startProfiling(cmd *cobra.Command) (*prof.Session, error) {
	flags := cmd.Root().PersistentFlags()
	var cfg prof.Config
	var err error
	if cfg.CPU, err = flags.GetString("cpuprofile"); err != nil {
		return nil, err
	}
	if cfg.Mem, err = flags.GetString("memprofile"); err != nil {
		return nil, err
	}
	if cfg.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return nil, err
	}
	if !cfg.Enabled() {
		return nil, nil
	}
	return prof.Start(cfg)
}
