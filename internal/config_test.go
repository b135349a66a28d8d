package internal

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvInt(t *testing.T) {
	t.Setenv("RESIZER_WORKERS", "6")
	assert.Equal(t, 6, EnvInt("WORKERS", 1))

	t.Setenv("RESIZER_WORKERS", "lots")
	assert.Equal(t, 1, EnvInt("WORKERS", 1))

	assert.Equal(t, 9, EnvInt("NOT_SET_ANYWHERE", 9))
}

func TestEnvString(t *testing.T) {
	t.Setenv("RESIZER_OUTPUT_PREFIX", "")
	assert.Equal(t, "", EnvString("OUTPUT_PREFIX", DefaultOutputPrefix))

	assert.Equal(t, DefaultOutputPrefix, EnvString("NOT_SET_ANYWHERE", DefaultOutputPrefix))
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		input  string
		prefix string
		want   string
	}{
		{"cat.jpg", "resized_", "resized_cat.png"},
		{filepath.Join("photos", "dog.png"), "resized_", filepath.Join("photos", "resized_dog.png")},
		{filepath.Join("a", "b", "archive.tar.gz"), "small_", filepath.Join("a", "b", "small_archive.tar.png")},
		{"https://example.com/img/owl.webp?size=large", "resized_", "resized_owl.png"},
		{"https://example.com/", "resized_", "resized_example.com.png"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, OutputPath(tt.input, tt.prefix), tt.input)
	}
}
