package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromValue(t *testing.T) {
	secret, err := Load(Source{Name: "api key", Value: "  abc123  "})
	require.NoError(t, err)
	assert.Equal(t, "abc123", secret)
}

func TestLoadFromFileTakesPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	require.NoError(t, os.WriteFile(path, []byte("from-file\n"), 0o600))

	secret, err := Load(Source{Name: "api key", Value: "inline", File: path})
	require.NoError(t, err)
	assert.Equal(t, "from-file", secret)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TEST_SECRET_ENV", "from-env")

	secret, err := Load(Source{Name: "api key", Env: "TEST_SECRET_ENV"})
	require.NoError(t, err)
	assert.Equal(t, "from-env", secret)
}

func TestLoadValueBeatsEnv(t *testing.T) {
	t.Setenv("TEST_SECRET_ENV", "from-env")

	secret, err := Load(Source{Value: "inline", Env: "TEST_SECRET_ENV"})
	require.NoError(t, err)
	assert.Equal(t, "inline", secret)
}

func TestLoadErrors(t *testing.T) {
	t.Run("nothing configured", func(t *testing.T) {
		_, err := Load(Source{Name: "api key"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "api key")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(Source{Name: "api key", File: filepath.Join(t.TempDir(), "absent")})
		assert.Error(t, err)
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "key")
		require.NoError(t, os.WriteFile(path, []byte("   \n"), 0o600))
		_, err := Load(Source{Name: "api key", File: path})
		assert.Error(t, err)
	})

	t.Run("env hint in message", func(t *testing.T) {
		_, err := Load(Source{Name: "api key", Env: "TEST_SECRET_UNSET"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "TEST_SECRET_UNSET")
	})
}
