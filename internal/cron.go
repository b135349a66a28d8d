package internal

import (
	"log"

	"github.com/robfig/cron/v3"
)

func StartCron(schedule, inputDir, outputDir string, poolSize int, opts ResizeOptions) (*cron.Cron, error) {
	c := cron.New()

	log.Printf("Starting CRON job to resize files (schedule=%s)", schedule)
	_, err := c.AddFunc(schedule, func() {
		errors := RunBatch(inputDir, outputDir, poolSize, opts)
		if len(errors) > 0 {
			log.Printf("Errors occurred: %v", errors)
		}
	})

	if err != nil {
		return nil, err
	}

	c.Start()
	return c, nil
}
