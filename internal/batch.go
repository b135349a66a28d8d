package internal

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

var ErrNoImages = errors.New("no images to process")

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}

type Processor struct {
	startTime time.Time
	endTime   time.Time
	inputDir  string
	outputDir string
	poolSize  int
	maxJobs   int
	jobs      chan string
	results   chan error
	files     []string
	opts      ResizeOptions
}

func NewBatch(inputDir, outputDir string, poolSize int, opts ResizeOptions) (*Processor, error) {
	if poolSize < 1 {
		return nil, errors.New("pool size must be at least 1")
	}
	if _, err := opts.Stages(); err != nil {
		return nil, err
	}
	startTime := time.Now()

	files, err := findImages(inputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", inputDir, err)
	}

	log.Printf("Directory %s contains %d images", inputDir, len(files))
	if len(files) == 0 {
		return nil, ErrNoImages
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	return &Processor{
		startTime: startTime,
		inputDir:  inputDir,
		outputDir: outputDir,
		poolSize:  poolSize,
		maxJobs:   -1,
		jobs:      make(chan string),
		results:   make(chan error),
		files:     files,
		opts:      opts,
	}, nil
}

// RunBatch processes every image in inputDir once. An empty directory is not
// an error.
func RunBatch(inputDir, outputDir string, poolSize int, opts ResizeOptions) []error {
	p, err := NewBatch(inputDir, outputDir, poolSize, opts)
	if errors.Is(err, ErrNoImages) {
		return nil
	}
	if err != nil {
		return []error{err}
	}

	p.StartWorkers()
	p.DispatchJobs()
	return p.Wait()
}

func findImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if slices.Contains(imageExtensions, ext) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	return files, nil
}

// DispatchJobs sends files to the jobs channel for processing by workers.
// When maxJobs is greater than zero, it limits the number of jobs dispatched,
// hence set to -1 to dispatch all jobs.
func (p *Processor) DispatchJobs() {

	go func() {
		for n, file := range p.files {
			if p.maxJobs > 0 && n >= p.maxJobs {
				break
			}
			p.jobs <- file
		}
		close(p.jobs)
	}()
}

func (p *Processor) StartWorkers() {
	log.Printf("Starting resizing files with pool size: %d", p.poolSize)

	for i := range p.poolSize {
		go p.worker(i)
	}
}

func (p *Processor) worker(i int) {
	log.Printf("Worker %d started", i)
	for file := range p.jobs {
		p.results <- p.processFile(file)
	}
	log.Printf("Worker %d finished", i)
}

// OutputName maps an input file to its PNG name in the output directory.
func (p *Processor) OutputName(file string) string {
	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	return filepath.Join(p.outputDir, base+".png")
}

func (p *Processor) processFile(file string) error {
	filename := p.OutputName(file)

	// if the file already exists, skip processing
	if _, err := os.Stat(filename); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}

	inFile, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", file, err)
	}
	defer func() {
		_ = inFile.Close()
	}()

	return WriteAtomically(filename, func(tmpFile *os.File) error {
		if err := ResizeStream(inFile, tmpFile, p.opts); err != nil {
			return fmt.Errorf("failed to resize %s: %w", file, err)
		}
		return nil
	})
}

// WriteAtomically writes to a temporary file alongside filename and renames
// it into place once write succeeds.
func WriteAtomically(filename string, write func(tmpFile *os.File) error) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(filename), "resize-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	cleanupTemp := true
	defer func() {
		_ = tmpFile.Close()
		if cleanupTemp {
			_ = os.Remove(tmpFile.Name())
		}
	}()

	if err := write(tmpFile); err != nil {
		return err
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file before rename: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), filename); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	cleanupTemp = false // Successfully renamed, don't delete
	return nil
}

func (p *Processor) Wait() []error {
	waitFor := len(p.files)
	if p.maxJobs > 0 {
		waitFor = min(p.maxJobs, waitFor)
	}
	log.Printf("Waiting for %d files to be resized", waitFor)

	errors := make([]error, 0, 10)
	for range waitFor {
		err := <-p.results
		if err != nil {
			errors = append(errors, err)
		}
	}
	p.endTime = time.Now()
	elapsed := p.endTime.Sub(p.startTime)
	log.Printf("All files resized in %s (errors=%d)", elapsed, len(errors))
	return errors
}
