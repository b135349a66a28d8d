package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rm-hull/lanczos-resizer/cmd"
	"github.com/rm-hull/lanczos-resizer/internal"
	"github.com/rm-hull/lanczos-resizer/internal/lanczos"
	"github.com/rm-hull/lanczos-resizer/internal/png/stage"
	"github.com/spf13/cobra"
)

func main() {
	var (
		prefix     string
		engine     string
		background string
		workers    int
		blur       float64
		greyscale  bool
		asJSON     bool
		apngPath   string
		frameDelay float64
		width      int
		height     int
		radius     int
		poolSize   int
		schedule   string
		port       int
		debug      bool
		inbox      string
		outbox     string
		every      time.Duration
		maxDim     int
	)

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	resizeOptions := func(w, h, r int) (internal.ResizeOptions, error) {
		bg, err := cmd.ParseHexColor(background)
		if err != nil {
			return internal.ResizeOptions{}, err
		}
		return internal.ResizeOptions{
			Width:        w,
			Height:       h,
			KernelRadius: r,
			Workers:      workers,
			Engine:       engine,
			Blur:         blur,
			Greyscale:    greyscale,
			Background:   bg,
		}, nil
	}

	rootCmd := &cobra.Command{
		Use:          "lanczos-resizer",
		Long:         `Resize images with a Lanczos windowed-sinc filter`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().IntVar(&workers, "workers", internal.EnvInt("WORKERS", 0), "Resample worker goroutines (0 = GOMAXPROCS) [RESIZER_WORKERS]")

	addPipelineFlags := func(c *cobra.Command) {
		c.Flags().StringVar(&engine, "engine", stage.LanczosEngine, fmt.Sprintf("Resize engine: %s or one of %v", stage.LanczosEngine, stage.ReferenceNames()))
		c.Flags().Float64Var(&blur, "blur", 0, "Gaussian blur sigma applied before resizing (0 = off)")
		c.Flags().BoolVar(&greyscale, "greyscale", false, "Convert to greyscale before resizing")
		c.Flags().StringVar(&background, "background", "", "Flatten transparency onto this #rrggbb colour before resizing")
	}

	resizeCmd := &cobra.Command{
		Use:   "resize <file|url> <width> <height> [radius]",
		Short: "Resize a single image, writing resized_<name>.png",
		Args:  cobra.RangeArgs(3, 4),
		RunE: func(_ *cobra.Command, args []string) error {
			w, h, r, err := cmd.ParseSizeArgs(args[1:])
			if err != nil {
				return err
			}
			opts, err := resizeOptions(w, h, r)
			if err != nil {
				return err
			}
			_, err = cmd.Resize(args[0], prefix, opts)
			return err
		},
	}
	resizeCmd.Flags().StringVar(&prefix, "prefix", internal.EnvString("OUTPUT_PREFIX", internal.DefaultOutputPrefix), "Output filename prefix [RESIZER_OUTPUT_PREFIX]")
	addPipelineFlags(resizeCmd)

	compareCmd := &cobra.Command{
		Use:   "compare <file|url> <width> <height> [radius]",
		Short: "Compare the Lanczos resampler against third-party resizers",
		Args:  cobra.RangeArgs(3, 4),
		RunE: func(_ *cobra.Command, args []string) error {
			w, h, r, err := cmd.ParseSizeArgs(args[1:])
			if err != nil {
				return err
			}
			return cmd.Compare(args[0], internal.ResizeOptions{Width: w, Height: h, KernelRadius: r, Workers: workers}, apngPath, frameDelay, asJSON, os.Stdout)
		},
	}
	compareCmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	compareCmd.Flags().StringVar(&apngPath, "apng", "", "Write an animated PNG cycling through every result")
	compareCmd.Flags().Float64Var(&frameDelay, "delay", 1.0, "Seconds per frame in the animation")

	batchCmd := &cobra.Command{
		Use:   "batch <input-dir> <output-dir> --width <w> --height <h> [--cron <schedule>]",
		Short: "Resize every image in a directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			opts, err := resizeOptions(width, height, radius)
			if err != nil {
				return err
			}
			return cmd.Batch(args[0], args[1], poolSize, schedule, opts)
		},
	}
	batchCmd.Flags().IntVar(&width, "width", 0, "Target width")
	batchCmd.Flags().IntVar(&height, "height", 0, "Target height")
	batchCmd.Flags().IntVar(&radius, "radius", lanczos.DefaultKernelRadius, "Lanczos kernel radius")
	batchCmd.Flags().IntVar(&poolSize, "pool-size", 2, "Number of images processed concurrently")
	batchCmd.Flags().StringVar(&schedule, "cron", "", "Repeat on this cron schedule until interrupted")
	_ = batchCmd.MarkFlagRequired("width")
	_ = batchCmd.MarkFlagRequired("height")
	addPipelineFlags(batchCmd)

	apiServerCmd := &cobra.Command{
		Use:   "api-server [--port <port>] [--debug] [--inbox <path> --width <w> --height <h>]",
		Short: "Start HTTP API server",
		Run: func(_ *cobra.Command, _ []string) {
			cmd.ApiServer(cmd.ApiServerConfig{
				Port:         port,
				Debug:        debug,
				Workers:      workers,
				PoolSize:     poolSize,
				InboxDir:     inbox,
				Outbox:       outbox,
				Every:        every,
				MaxDimension: maxDim,
				InboxWidth:   width,
				InboxHeight:  height,
				InboxRadius:  radius,
			})
		},
	}
	apiServerCmd.Flags().IntVar(&port, "port", 8080, "Port to run HTTP server on")
	apiServerCmd.Flags().BoolVar(&debug, "debug", false, "Enable debugging (pprof) - WARNING: do not enable in production")
	apiServerCmd.Flags().IntVar(&maxDim, "max-dimension", internal.EnvInt("MAX_DIMENSION", internal.DefaultMaxDimension), "Largest width or height accepted by /v1/resize [RESIZER_MAX_DIMENSION]")
	apiServerCmd.Flags().StringVar(&inbox, "inbox", "", "Directory polled for images to resize")
	apiServerCmd.Flags().StringVar(&outbox, "outbox", "./data/resized", "Directory resized inbox images are written to and served from")
	apiServerCmd.Flags().DurationVar(&every, "every", 5*time.Minute, "Inbox polling interval")
	apiServerCmd.Flags().IntVar(&width, "width", 0, "Target width for inbox images")
	apiServerCmd.Flags().IntVar(&height, "height", 0, "Target height for inbox images")
	apiServerCmd.Flags().IntVar(&radius, "radius", lanczos.DefaultKernelRadius, "Lanczos kernel radius for inbox images")
	apiServerCmd.Flags().IntVar(&poolSize, "pool-size", 2, "Number of inbox images processed concurrently")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(internal.Version())
		},
	}

	rootCmd.AddCommand(resizeCmd, compareCmd, batchCmd, apiServerCmd, versionCmd)
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
