package parquetio

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magpielabs/magpie/internal/ports"
)

func TestWriteAllReadAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "messages.parquet")

	want := []ports.MessageRow{
		{SurrogateID: 0, MessageID: "m1", AuthorID: "alice", Text: "hello #world", Timestamp: 1717236600},
		{SurrogateID: 1, MessageID: "m2", AuthorID: "bob", Text: "再见", Timestamp: 1717236660},
	}
	require.NoError(t, WriteAll(path, want))

	got, err := ReadAll[ports.MessageRow](path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReadAll_MissingFile(t *testing.T) {
	_, err := ReadAll[ports.MessageRow](filepath.Join(t.TempDir(), "absent.parquet"))
	assert.Error(t, err)
}

func TestWriter_StreamsBatches(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ngrams.parquet")

	w, err := NewWriter[ports.NgramDefRow](path)
	require.NoError(t, err)

	require.NoError(t, w.Write([]ports.NgramDefRow{{NgramID: 0, Words: "go go go", Length: 3}}))
	require.NoError(t, w.Write([]ports.NgramDefRow{{NgramID: 1, Words: "it's very bad", Length: 3}}))
	require.NoError(t, w.Close())

	got, err := ReadAll[ports.NgramDefRow](path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "go go go", got[0].Words)
	assert.Equal(t, int32(3), got[1].Length)
}
