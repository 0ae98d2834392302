package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/deptlens/internal/cli/formatter"
	"github.com/alexanderramin/deptlens/internal/domain"
	"github.com/alexanderramin/deptlens/internal/service"
	"github.com/spf13/cobra"
)

func newDatasetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Inspect, validate, import and export datasets",
	}

	cmd.AddCommand(
		newDatasetInfoCmd(app),
		newDatasetValidateCmd(app),
		newDatasetImportCmd(app),
		newDatasetExportCmd(app),
	)

	return cmd
}

func newDatasetInfoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show where the dataset comes from and what it holds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, src, err := app.Datasets.Load(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDatasetInfo(src, ds, domain.DeriveBounds(ds)))
			return nil
		},
	}
}

func newDatasetValidateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a dataset file and list every problem found",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			problems, err := app.Datasets.Validate(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatValidation(args[0], problems))
			if len(problems) > 0 {
				return fmt.Errorf("%s has %s", args[0], formatter.Plural(len(problems), "problem"))
			}
			return nil
		},
	}
}

func newDatasetImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the SQLite dataset store with a dataset file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			load, err := app.Datasets.Import(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatImport(load, app.Config.DBPath))
			return nil
		},
	}
}

func newDatasetExportCmd(app *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the current dataset as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				_, err := app.Datasets.Export(cmd.Context(), cmd.OutOrStdout())
				return err
			}

			src, err := exportToFile(cmd.Context(), app, output)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%s Exported %s dataset to %s\n",
				formatter.StyleGreen.Render("✔"), src.Kind, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")

	return cmd
}

// exportToFile writes the dataset next to path and renames it into place,
// so a failed export never leaves a partial or truncated file behind.
func exportToFile(ctx context.Context, app *App, path string) (*service.DatasetSource, error) {
	f, err := os.CreateTemp(filepath.Dir(path), ".deptlens-export-*")
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	src, err := app.Datasets.Export(ctx, f)
	if err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Chmod(0o644); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}
	return src, nil
}
