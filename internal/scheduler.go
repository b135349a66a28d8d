package internal

import (
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// NewScheduler resizes everything already waiting in inboxDir, then repeats
// every interval until the returned scheduler is shut down.
func NewScheduler(inboxDir, outboxDir string, poolSize int, opts ResizeOptions, every time.Duration) (gocron.Scheduler, error) {

	if errs := RunBatch(inboxDir, outboxDir, poolSize, opts); len(errs) > 0 {
		return nil, fmt.Errorf("initial run of job failed: %v", errs)
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(every),
		gocron.NewTask(func() {
			if errs := RunBatch(inboxDir, outboxDir, poolSize, opts); len(errs) > 0 {
				log.Printf("Errors occurred: %v", errs)
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	log.Printf("Watching %s every %s", inboxDir, every)
	scheduler.Start()
	return scheduler, nil
}
