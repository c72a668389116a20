package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticProvider(t *testing.T) {
	p := Static{"FilePath": "/tmp/data.bin"}

	value, ok := p.Get("FilePath")
	assert.True(t, ok, "Should find a present key")
	assert.Equal(t, "/tmp/data.bin", value)

	_, ok = p.Get("UploadPassword")
	assert.False(t, ok, "Should not find an absent key")
}

func TestNew_FileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	content := "FilePath = \"/var/data/storage.bin\"\nUploadPassword = \"secret\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("PS_CONFIG", path)

	p := New()

	value, ok := p.Get("FilePath")
	assert.True(t, ok, "Should resolve a key from the settings file")
	assert.Equal(t, "/var/data/storage.bin", value)

	value, ok = p.Get("UploadPassword")
	assert.True(t, ok)
	assert.Equal(t, "secret", value)

	_, ok = p.Get("DownloadPassword")
	assert.False(t, ok, "Should not invent values for missing keys")
}

func TestNew_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("UploadPassword = \"from-file\"\n"), 0o600))
	t.Setenv("PS_CONFIG", path)
	t.Setenv("UploadPassword", "from-env")

	p := New()

	value, ok := p.Get("UploadPassword")
	assert.True(t, ok)
	assert.Equal(t, "from-env", value, "Environment should take precedence over the file")
}

func TestNew_MissingFileIsNotAnError(t *testing.T) {
	t.Setenv("PS_CONFIG", filepath.Join(t.TempDir(), "does-not-exist.toml"))
	t.Setenv("DownloadPassword", "dl-secret")

	p := New()

	value, ok := p.Get("DownloadPassword")
	assert.True(t, ok, "Environment lookups should still work without a settings file")
	assert.Equal(t, "dl-secret", value)
}
