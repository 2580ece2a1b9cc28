package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"armor-vision/config"
	app "armor-vision/internal/application"
	"armor-vision/internal/container"
	"armor-vision/internal/infrastructure/vision"
)

const windowTitle = "armor-vision"

type runOptions struct {
	input    string
	camera   int
	output   string
	show     bool
	save     bool
	progress bool
}

func newRunCommand(s *session) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Detect armor plates in a video file or camera stream",
		Long:  "Reads frames from --input (or the camera when no input is given), detects armor plates, recognizes digits and optionally shows or saves the annotated stream. Press Esc in the window to stop.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			cfg := s.cfg
			if flags.Changed("input") {
				cfg.Input = opts.input
			}
			if flags.Changed("camera") {
				cfg.Camera = opts.camera
			}
			if flags.Changed("output") {
				cfg.Output = opts.output
			}
			if flags.Changed("show") {
				cfg.Show = opts.show
			}
			if flags.Changed("save") {
				cfg.Save = opts.save
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return s.runStream(cmd, opts.progress)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.input, "input", "i", "", "Path to a video file; takes precedence over --camera")
	f.IntVarP(&opts.camera, "camera", "c", 0, "Camera index")
	f.StringVarP(&opts.output, "output", "o", config.DefaultOutput, "Path of the annotated MJPG video")
	f.BoolVar(&opts.show, "show", true, "Show annotated frames in a window")
	f.BoolVar(&opts.save, "save", false, "Save annotated frames to --output")
	f.BoolVar(&opts.progress, "progress", true, "Show a progress bar for video files")
	return cmd
}

func (s *session) runStream(cmd *cobra.Command, progress bool) error {
	ctx := cmd.Context()
	cfg := s.cfg
	color := s.color()

	source, err := vision.OpenSource(cfg.Input, cfg.Camera)
	if err != nil {
		return err
	}
	defer source.Close()

	c, err := container.Build(ctx, cfg, s.log)
	if err != nil {
		return err
	}
	defer c.Close(context.Background())

	opts := app.RunOptions{
		Source:     source,
		SourceName: source.Name(),
		Color:      color,
	}

	// камера всегда показывается, иначе её нечем остановить
	if cfg.Show || cfg.Input == "" {
		display, err := vision.NewWindowDisplay(windowTitle)
		if err != nil {
			return err
		}
		defer display.Close()
		opts.Display = display
	}

	if cfg.Save && cfg.Output != "" {
		width, height := source.Size()
		sink, err := vision.OpenSink(cfg.Output, source.FPS(), width, height)
		if err != nil {
			s.log.Warn("cannot create output video, results will not be saved", "path", cfg.Output, "err", err)
		} else {
			defer sink.Close()
			opts.Sink = sink
		}
	}

	if progress && cfg.Input != "" && !cfg.Show {
		opts.Progress = cmd.ErrOrStderr()
	}

	stats, err := c.DetectionService.Run(ctx, opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "frames: %d\ntime: %.2f s\naverage fps: %.1f\ndetections: %d\n",
		stats.Frames, stats.Elapsed.Seconds(), stats.AverageFPS(), stats.Detections)
	return nil
}
