package cmd

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/rm-hull/lanczos-resizer/internal"
)

// Batch resizes every image in inputDir into outputDir. With a cron schedule
// it keeps doing so until interrupted.
func Batch(inputDir, outputDir string, poolSize int, schedule string, opts internal.ResizeOptions) error {
	internal.ShowVersion()
	internal.EnvironmentVars(internal.EnvPrefix)

	if schedule == "" {
		return errors.Join(internal.RunBatch(inputDir, outputDir, poolSize, opts)...)
	}

	c, err := internal.StartCron(schedule, inputDir, outputDir, poolSize, opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Println("Stopping CRON job, waiting for running batch to finish")
	<-c.Stop().Done()
	return nil
}
