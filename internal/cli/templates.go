package cli

import (
	"fmt"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"armor-vision/internal/domain/digit"
)

func newTemplatesCommand(s *session) *cobra.Command {
	var (
		dir   string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Export the built-in digit glyphs as template PNG files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := s.cfg.Tuning.Digit
			if cmd.Flags().Changed("dir") {
				params.TemplateDir = dir
			}

			written, err := ExportTemplates(params, force)
			if err != nil {
				return err
			}
			for _, path := range written {
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			s.log.Info("templates exported", "dir", params.TemplateDir, "count", len(written))
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Target directory (default: --templates)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")
	return cmd
}

// ExportTemplates пишет синтетические шаблоны в каталог params.TemplateDir.
// Существующие файлы сохраняются, если не задан force.
func ExportTemplates(params digit.Params, force bool) ([]string, error) {
	templates, err := digit.SyntheticTemplates(params)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(params.TemplateDir, 0o755); err != nil {
		return nil, fmt.Errorf("create template dir: %w", err)
	}

	var written []string
	for _, t := range templates {
		path := digit.TemplatePath(params.TemplateDir, t.Label)
		if !force {
			if _, err := os.Stat(path); err == nil {
				continue
			}
		}
		if err := writePNG(path, t.Bitmap); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func writePNG(path string, bm digit.Bitmap) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, bm.Gray()); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
