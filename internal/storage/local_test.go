package storage

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndRead(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	n, err := s.Save("a.bin", bytes.NewReader([]byte("hello")))
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	data, err := s.Read("a.bin")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)
}

func TestSaveRejectsDuplicateName(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = s.Save("a.bin", bytes.NewReader([]byte("one")))
	require.NoError(t, err)

	_, err = s.Save("a.bin", bytes.NewReader([]byte("two")))
	assert.Error(t, err)

	// The original bytes survive the clash
	data, err := s.Read("a.bin")
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), data)
}

func TestRemove(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = s.Save("a.bin", bytes.NewReader([]byte("x")))
	require.NoError(t, err)

	require.NoError(t, s.Remove("a.bin"))

	_, err = s.Read("a.bin")
	assert.Error(t, err)
}

func TestPathStaysInsideRoot(t *testing.T) {
	root := t.TempDir()
	s, err := New(root)
	require.NoError(t, err)

	got := s.path("../../etc/passwd")
	assert.Equal(t, filepath.Join(root, "passwd"), got)
}
