package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewListCmd creates the list command
func NewListCmd(a *app) *cobra.Command {
	var details bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List installed packages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if !details {
				names, err := a.service.GetAppList(ctx).Await(ctx)
				if err != nil {
					return err
				}
				logrus.Debugf("Found %d packages", len(names))
				return render(cmd.OutOrStdout(), a.output, names)
			}

			all, err := a.service.GetAll(ctx).Await(ctx)
			if err != nil {
				return err
			}
			views := make([]*packageView, 0, len(all))
			for idx := range all {
				views = append(views, newPackageView(&all[idx]))
			}
			return render(cmd.OutOrStdout(), a.output, views)
		},
	}

	cmd.Flags().BoolVarP(&details, "details", "d", false, "Print a descriptor per package")

	return cmd
}
