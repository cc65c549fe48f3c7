package cli

import (
	"errors"
	"fmt"

	"github.com/leonhh/applist/internal/models"
	"github.com/leonhh/applist/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewFilesCmd creates the files command
func NewFilesCmd(a *app) *cobra.Command {
	var (
		paths      []string
		suffixes   []string
		extractDir string
	)

	cmd := &cobra.Command{
		Use:   "files <package>",
		Short: "Read entries from the APK archives of a package",
		Long: `Reads archive entries of a package, searching the primary APK first
and then each split APK.

  --path     one result per requested path, in request order (null when
             nothing matched). Paths may be exact entry names, trailing path
             segments, or doublestar globs such as res/**/*.xml.
  --suffix   every entry whose name ends with one of the suffixes, keyed by
             entry name; later archives override earlier ones.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := args[0]

			if len(paths) > 0 && len(suffixes) > 0 {
				return &models.IntrospectError{
					Type: models.ErrInvalidConfig,
					Err:  errors.New("--path and --suffix are mutually exclusive"),
				}
			}
			if len(paths) == 0 && len(suffixes) == 0 {
				return &models.IntrospectError{
					Type: models.ErrInvalidConfig,
					Err:  errors.New("one of --path or --suffix is required"),
				}
			}

			if len(suffixes) > 0 {
				content, err := a.service.GetFileContent(ctx, name, suffixes).Await(ctx)
				if err != nil {
					return err
				}
				if extractDir != "" {
					for entry, text := range content {
						if err := extract(extractDir, entry, text); err != nil {
							return err
						}
					}
				}
				return render(cmd.OutOrStdout(), a.output, content)
			}

			files, err := a.service.GetFiles(ctx, name, paths).Await(ctx)
			if err != nil {
				return err
			}
			if extractDir != "" {
				for _, f := range files {
					if f == nil {
						continue
					}
					if err := extract(extractDir, f.Name, f.Content); err != nil {
						return err
					}
				}
			}
			return render(cmd.OutOrStdout(), a.output, files)
		},
	}

	cmd.Flags().StringSliceVarP(&paths, "path", "p", nil, "Entry path to read (repeatable)")
	cmd.Flags().StringSliceVar(&suffixes, "suffix", nil, "Entry name suffix to match (repeatable)")
	cmd.Flags().StringVar(&extractDir, "extract-dir", "", "Also write matched entries under this directory")

	return cmd
}

func extract(dir, entry, content string) error {
	target, err := utils.SafeJoin(dir, entry)
	if err != nil {
		return err
	}
	if err := utils.WriteFile(target, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to extract %s: %w", entry, err)
	}
	logrus.Debugf("Extracted %s to %s", entry, target)
	return nil
}
