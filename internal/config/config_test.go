package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "github.com/ukaji3/propbook-go/pkg/propbook/errors"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("PROPBOOK_WORKBOOK", "")
	t.Setenv("PROPBOOK_SEED", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, DefaultWorkbookPath, cfg.Workbook.Path)
	assert.True(t, cfg.Workbook.Seed)
	assert.Equal(t, "INFO", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PROPBOOK_WORKBOOK", "/srv/books/q3.xlsx")
	t.Setenv("PROPBOOK_SEED", "false")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "JSON")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "/srv/books/q3.xlsx", cfg.Workbook.Path)
	assert.False(t, cfg.Workbook.Seed)
	assert.Equal(t, "DEBUG", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"workbook extension", "PROPBOOK_WORKBOOK", "data/book.csv"},
		{"log level", "LOG_LEVEL", "TRACE"},
		{"log format", "LOG_FORMAT", "xml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PROPBOOK_WORKBOOK", "")
			t.Setenv("LOG_LEVEL", "")
			t.Setenv("LOG_FORMAT", "")
			t.Setenv(tt.key, tt.value)

			_, err := FromEnv()
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperr.ErrConfig))
		})
	}
}

func TestValidate_EmptyPath(t *testing.T) {
	cfg := &Config{Log: LogConfig{Level: "INFO", Format: "text"}}
	assert.True(t, errors.Is(cfg.Validate(), apperr.ErrConfig))
}
