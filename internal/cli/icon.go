package cli

import (
	"encoding/base64"
	"fmt"

	"github.com/leonhh/applist/internal/models"
	"github.com/leonhh/applist/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewIconCmd creates the icon command
func NewIconCmd(a *app) *cobra.Command {
	var (
		size int
		out  string
	)

	cmd := &cobra.Command{
		Use:   "icon <package>",
		Short: "Render the icon of a package",
		Long: `Renders the package icon as a PNG scaled to fit --size and prints it
base64 encoded, or writes the PNG to --out.

Icons are cached per package for the lifetime of the process, so the first
size requested is the one returned.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := args[0]

			encoded, err := a.service.GetAppIcon(ctx, name, size).Await(ctx)
			if err != nil {
				return err
			}

			if out == "" || encoded == nil {
				return render(cmd.OutOrStdout(), a.output, encoded)
			}

			data, err := base64.StdEncoding.DecodeString(*encoded)
			if err != nil {
				return &models.IntrospectError{
					Type:    models.ErrIconRender,
					Package: name,
					Err:     fmt.Errorf("failed to decode icon: %w", err),
				}
			}
			if err := utils.WriteFile(out, data, 0644); err != nil {
				return fmt.Errorf("failed to write icon: %w", err)
			}

			logrus.Infof("Wrote icon of %s to %s", name, out)
			return render(cmd.OutOrStdout(), a.output, out)
		},
	}

	cmd.Flags().IntVarP(&size, "size", "s", 0, "Max icon dimension in pixels (default from config)")
	cmd.Flags().StringVar(&out, "out", "", "Write the PNG to this file")

	return cmd
}
