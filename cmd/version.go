package cmd

import (
	"fmt"

	"uvflags/pkg/config"
	"uvflags/pkg/version"

	"github.com/spf13/cobra"
)

// versionCmd prints the build and the toolchain include paths compiled into it,
// since those decide the system -I flags written by a default run.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the uvflags build and its built-in toolchain paths",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		short, err := cmd.Flags().GetBool("short")
		if err != nil {
			return fmt.Errorf("error reading flags: %w", err)
		}

		v := version.Get()
		out := cmd.OutOrStdout()
		if short {
			fmt.Fprintln(out, v.Version)
			return nil
		}

		fmt.Fprintln(out, v.String())
		fmt.Fprintln(out, "Built-in system includes:")
		for _, inc := range config.Default().SystemIncludes {
			fmt.Fprintf(out, "  %s\n", inc)
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolP("short", "s", false, "Print the version number only")
	RootCmd.AddCommand(versionCmd)
}
