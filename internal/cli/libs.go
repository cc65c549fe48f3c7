package cli

import (
	"github.com/spf13/cobra"
)

// NewLibsCmd creates the libs command
func NewLibsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "libs <package>",
		Short: "List the native libraries of a package",
		Long: `Lists native library file names found in the package's library
directories and inside its APK archives.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			libs, err := a.service.GetNativeLibraries(ctx, args[0]).Await(ctx)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), a.output, libs)
		},
	}
}

// NewPermsCmd creates the perms command
func NewPermsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "perms <package>",
		Short: "List the permissions a package requests",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			perms, err := a.service.GetPermissions(ctx, args[0]).Await(ctx)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), a.output, perms)
		},
	}
}
