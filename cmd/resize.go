package cmd

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/rm-hull/lanczos-resizer/internal"
)

// Resize reads source (a path or an http(s) URL), resizes it and writes a PNG
// next to it named with prefix. It returns the path written.
func Resize(source, prefix string, opts internal.ResizeOptions) (string, error) {
	start := time.Now()
	client := internal.NewSourceClient("lanczos-resizer/" + internal.Version())

	inFile, err := internal.OpenSource(client, source)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := inFile.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to close input %s: %v\n", source, err)
		}
	}()

	filename := internal.OutputPath(source, prefix)
	err = internal.WriteAtomically(filename, func(tmpFile *os.File) error {
		return internal.ResizeStream(inFile, tmpFile, opts)
	})
	if err != nil {
		return "", fmt.Errorf("failed to resize %s: %w", source, err)
	}

	log.Printf("Resized %s to %dx%d (radius=%d) in %s: %s", source, opts.Width, opts.Height, opts.KernelRadius, time.Since(start), filename)
	return filename, nil
}
