package sink

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteWithinCapacitySucceeds(t *testing.T) {
	b := New(16)
	n, err := b.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, 5, b.Len())
}

func TestWriteBeyondCapacityIsRejected(t *testing.T) {
	b := New(4)
	_, err := b.Write([]byte("hello"))
	assert.ErrorIs(t, err, ErrFull)
	assert.Equal(t, 0, b.Len())
}

func TestWriteNeverPartiallyAppendsOnOverflow(t *testing.T) {
	b := New(8)
	_, err := b.Write([]byte("1234"))
	require.NoError(t, err)
	_, err = b.Write([]byte("56789"))
	assert.ErrorIs(t, err, ErrFull)
	assert.Equal(t, "1234", string(b.Bytes()))
}

func TestFlushToWritesFullContents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.c")

	b := New(64)
	_, err := b.Write([]byte("int main(void) { return 0; }"))
	require.NoError(t, err)
	require.NoError(t, b.FlushTo(path))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "int main(void) { return 0; }", string(got))
}
