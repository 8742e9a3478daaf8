package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	_, err := Load()
	assert.ErrorContains(t, err, "BOT_TOKEN")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("FILES_DIR", "")
	t.Setenv("FILE_RETENTION", "")
	t.Setenv("PRO_USERS", "")
	t.Setenv("OCR_LANGUAGES", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultFilesDir, cfg.FilesDir)
	assert.Equal(t, DefaultRetention, cfg.Retention)
	assert.Empty(t, cfg.ProUsers)
	assert.Equal(t, []string{"eng"}, cfg.OCRLanguages)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("FILES_DIR", "/tmp/work")
	t.Setenv("FILE_RETENTION", "30m")
	t.Setenv("PRO_USERS", "11, 22,33")
	t.Setenv("OCR_LANGUAGES", "eng, rus")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/work", cfg.FilesDir)
	assert.Equal(t, 30*time.Minute, cfg.Retention)
	assert.Equal(t, []int64{11, 22, 33}, cfg.ProUsers)
	assert.Equal(t, []string{"eng", "rus"}, cfg.OCRLanguages)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")

	t.Setenv("FILE_RETENTION", "soon")
	_, err := Load()
	assert.ErrorContains(t, err, "FILE_RETENTION")
	t.Setenv("FILE_RETENTION", "")

	t.Setenv("PRO_USERS", "abc")
	_, err = Load()
	assert.ErrorContains(t, err, "PRO_USERS")
}
