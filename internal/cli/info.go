package cli

import (
	"github.com/leonhh/applist/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewInfoCmd creates the info command
func NewInfoCmd(a *app) *cobra.Command {
	var checksum bool

	cmd := &cobra.Command{
		Use:   "info <package>",
		Short: "Print the descriptor of a package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := args[0]

			desc, err := a.service.GetPackageDetails(ctx, name).Await(ctx)
			if err != nil {
				return err
			}
			view := newPackageView(desc)
			if view == nil {
				logrus.Debugf("No descriptor for %s", name)
				return render(cmd.OutOrStdout(), a.output, nil)
			}

			if checksum {
				if paths := a.service.Introspector().ArchivePaths(ctx, name); len(paths) > 0 {
					sum, err := utils.CalculateChecksum(paths[0])
					if err != nil {
						logrus.Warnf("Failed to checksum %s: %v", paths[0], err)
					} else {
						view.Checksum = sum
					}
				}
			}

			return render(cmd.OutOrStdout(), a.output, view)
		},
	}

	cmd.Flags().BoolVar(&checksum, "checksum", false, "Include the SHA-256 of the primary APK")

	return cmd
}
