package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// writeOutput writes data to path, or to the command's stdout when path is
// empty.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Written to %s\n", path)
	return nil
}
