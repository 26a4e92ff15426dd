package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"synscan/internal/prof"
)

// startProfiling reads the persistent profiling flags. The returned session
// is never nil on success.
func startProfiling(cmd *cobra.Command) (*prof.Session, error) {
	root := cmd.Root()
	cpuProfile, err := root.PersistentFlags().GetString("cpu-profile")
	if err != nil {
		return nil, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	memProfile, err := root.PersistentFlags().GetString("mem-profile")
	if err != nil {
		return nil, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	return prof.Start(cpuProfile, memProfile)
}
