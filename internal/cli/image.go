package cli

import (
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"armor-vision/internal/container"
)

func newImageCommand(s *session) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "image <path>",
		Short: "Detect armor plates on a single still image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			img, err := readImage(args[0])
			if err != nil {
				return err
			}

			c, err := container.Build(ctx, s.cfg, s.log)
			if err != nil {
				return err
			}
			defer c.Close(context.Background())

			out, err := c.DetectionService.DetectImage(ctx, img, s.color())
			if err != nil {
				return err
			}
			text, err := c.Describer.Describe(ctx, out.Result)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)

			if output == "" || out.Annotated == nil {
				return nil
			}
			if err := writeImage(output, out.Annotated); err != nil {
				return err
			}
			s.log.Info("annotated image saved", "path", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Save the annotated image (.png or .jpg)")
	return cmd
}

func readImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

func writeImage(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
