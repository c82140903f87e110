package util_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"github.com/wurstmineberg/bitbar-server-status/pkg/util"
)

func TestWriteFileAtomic(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "nested", "dir", "out.json")

	require.False(t, util.Exists(target))

	t.Run("Create", func(t *testing.T) {
		require.NoError(t, util.WriteFileAtomic(target, 0o600, func(w io.Writer) error {
			_, err := w.Write([]byte("first"))

			return err
		}))

		body, errRead := os.ReadFile(target)
		require.NoError(t, errRead)
		require.Equal(t, "first", string(body))
	})

	t.Run("Replace", func(t *testing.T) {
		require.NoError(t, util.WriteFileAtomic(target, 0o600, func(w io.Writer) error {
			_, err := w.Write([]byte("2nd"))

			return err
		}))

		body, errRead := os.ReadFile(target)
		require.NoError(t, errRead)
		require.Equal(t, "2nd", string(body))
	})

	t.Run("Failed write keeps old content", func(t *testing.T) {
		errBoom := errors.New("boom")
		require.ErrorIs(t, util.WriteFileAtomic(target, 0o600, func(w io.Writer) error {
			_, _ = w.Write([]byte("partial"))

			return errBoom
		}), errBoom)

		body, errRead := os.ReadFile(target)
		require.NoError(t, errRead)
		require.Equal(t, "2nd", string(body))

		entries, errDir := os.ReadDir(filepath.Dir(target))
		require.NoError(t, errDir)
		require.Len(t, entries, 1)
	})
}
