package internal

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	EnvPrefix           = "RESIZER_"
	DefaultOutputPrefix = "resized_"

	// DefaultMaxDimension caps each side of an image requested over HTTP.
	DefaultMaxDimension = 8192
)

// EnvInt reads RESIZER_<name> as an integer, falling back to def when unset
// or malformed.
func EnvInt(name string, def int) int {
	value := os.Getenv(EnvPrefix + name)
	if value == "" {
		return def
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Ignoring %s%s=%q: %v", EnvPrefix, name, value, err)
		return def
	}
	return n
}

func EnvString(name, def string) string {
	if value, ok := os.LookupEnv(EnvPrefix + name); ok {
		return value
	}
	return def
}

// OutputPath names the resized copy of input: same directory (or the working
// directory for URLs), prefixed base name, always a .png extension.
func OutputPath(input, prefix string) string {
	dir := filepath.Dir(input)
	if IsRemote(input) {
		dir = "."
		input = strings.SplitN(strings.SplitN(input, "?", 2)[0], "#", 2)[0]
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	if base == "" || base == "." || base == "/" {
		base = "image"
	}
	return filepath.Join(dir, prefix+base+".png")
}
