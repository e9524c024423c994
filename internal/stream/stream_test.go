package stream

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAll_DefaultStream(t *testing.T) {
	text, name, err := ReadAll("", strings.NewReader("a = 1\n"))
	require.NoError(t, err)

	assert.Equal(t, "a = 1\n", text)
	assert.Equal(t, StdinName, name)
}

func TestReadAll_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "values.toml")
	require.NoError(t, os.WriteFile(path, []byte("b = 2\n"), 0o600))

	text, name, err := ReadAll(path, strings.NewReader("ignored"))
	require.NoError(t, err)

	assert.Equal(t, "b = 2\n", text)
	assert.Equal(t, path, name)
}

func TestReadAll_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.toml")

	_, name, err := ReadAll(path, strings.NewReader(""))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
	assert.Equal(t, path, name)
}

func TestWriteAll_DefaultStream(t *testing.T) {
	var buf bytes.Buffer

	name, err := WriteAll("", &buf, "no trailing newline")
	require.NoError(t, err)

	assert.Equal(t, StdoutName, name)
	assert.Equal(t, "no trailing newline", buf.String())
}

func TestWriteAll_TruncatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xml")
	require.NoError(t, os.WriteFile(path, []byte("previous, much longer content"), 0o600))

	name, err := WriteAll(path, nil, "new")
	require.NoError(t, err)
	assert.Equal(t, path, name)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestWriteAll_BadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no", "such", "dir", "out.txt")

	name, err := WriteAll(path, nil, "x")
	require.Error(t, err)
	assert.Equal(t, path, name)
}

func TestOpenSink_DefaultCloseIsNoop(t *testing.T) {
	var buf bytes.Buffer

	w, _, err := OpenSink("", &buf)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, err = w.Write([]byte("still open"))
	require.NoError(t, err)
	assert.Equal(t, "still open", buf.String())
}
