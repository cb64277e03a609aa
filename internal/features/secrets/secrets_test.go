package secrets_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"specgen/internal/features/secrets"
)

func TestSealLoad(t *testing.T) {
	t.Run("should round-trip dotenv values", func(t *testing.T) {
		sealed, err := secrets.Seal([]byte("OPENAI_API_KEY=sk-live-123\nPORT=8080\n"), "hunter2")
		require.NoError(t, err)
		assert.Contains(t, string(sealed), "-----BEGIN AGE ENCRYPTED FILE-----")

		path := filepath.Join(t.TempDir(), secrets.FileName)
		require.NoError(t, os.WriteFile(path, sealed, 0o600))

		values, err := secrets.Load(path, "hunter2")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"OPENAI_API_KEY": "sk-live-123", "PORT": "8080"}, values)
	})

	t.Run("should fail with the wrong password", func(t *testing.T) {
		sealed, err := secrets.Seal([]byte("A=1\n"), "right")
		require.NoError(t, err)

		path := filepath.Join(t.TempDir(), secrets.FileName)
		require.NoError(t, os.WriteFile(path, sealed, 0o600))

		_, err = secrets.Load(path, "wrong")
		assert.Error(t, err)
	})

	t.Run("should require a password when the file exists", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), secrets.FileName)
		require.NoError(t, os.WriteFile(path, []byte("anything"), 0o600))

		_, err := secrets.Load(path, "")
		assert.ErrorIs(t, err, secrets.ErrNoPassword)
	})

	t.Run("should return nothing for a missing file", func(t *testing.T) {
		values, err := secrets.Load(filepath.Join(t.TempDir(), secrets.FileName), "")
		require.NoError(t, err)
		assert.Empty(t, values)
	})

	t.Run("should refuse to seal without a password", func(t *testing.T) {
		_, err := secrets.Seal([]byte("A=1\n"), "")
		assert.ErrorIs(t, err, secrets.ErrNoPassword)
	})
}
