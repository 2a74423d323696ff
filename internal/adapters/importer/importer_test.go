package importer

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magpielabs/magpie/internal/adapters/parquetio"
	"github.com/magpielabs/magpie/internal/ports"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDetectLayout_CleanFile(t *testing.T) {
	path := writeFile(t, "clean.csv",
		"tweet_id,screen_name,text,created_at\n"+
			"1,alice,hello world,2024-06-01 10:00:00\n"+
			"2,bob,more text,2024-06-01 11:00:00\n")

	layout := DetectLayout(path)
	assert.Equal(t, 0, layout.SkipRows)
	assert.Equal(t, ',', layout.Delimiter)
}

func TestDetectLayout_PreambleBeforeHeader(t *testing.T) {
	path := writeFile(t, "preamble.csv",
		"Downloaded from the platform export tool on 2024-06-05\n"+
			"\n"+
			"tweet_id,screen_name,text,created_at\n"+
			"1,alice,hello,2024-06-01 10:00:00\n"+
			"2,bob,world,2024-06-01 11:00:00\n")

	layout := DetectLayout(path)
	assert.Equal(t, 2, layout.SkipRows)
}

func TestDetectLayout_Semicolons(t *testing.T) {
	path := writeFile(t, "semi.csv",
		"tweet_id;screen_name;text;created_at\n"+
			"1;alice;hello;2024-06-01 10:00:00\n"+
			"2;bob;world;2024-06-01 11:00:00\n")

	layout := DetectLayout(path)
	assert.Equal(t, ';', layout.Delimiter)
}

func TestCSVSource_PadsRaggedRows(t *testing.T) {
	path := writeFile(t, "ragged.csv",
		"a,b,c\n"+
			"1,2\n"+
			"1,2,3,4\n")

	src, err := OpenCSV(path, Layout{Delimiter: ',', HasHeader: true})
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, []string{"a", "b", "c"}, src.Headers())

	rec, err := src.Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", ""}, rec)

	rec, err = src.Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, rec)

	_, err = src.Read()
	assert.Equal(t, io.EOF, err)
}

func TestCSVSource_Headerless(t *testing.T) {
	path := writeFile(t, "noheader.csv", "1,alice,hi\n2,bob,yo\n")

	src, err := OpenCSV(path, Layout{Delimiter: ',', HasHeader: false})
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, []string{"column_1", "column_2", "column_3"}, src.Headers())

	rec, err := src.Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "alice", "hi"}, rec)
}

func TestMapper_HintsAndTypes(t *testing.T) {
	headers := []string{"tweet_id", "screen_name", "full_text", "created_at"}
	sample := map[string][]string{
		"tweet_id":    {"100", "101", "102"},
		"screen_name": {"alice", "bob", "carol"},
		"full_text":   {"a longer message with spaces", "another message here", "and one more"},
		"created_at":  {"2024-06-01 10:00:00", "2024-06-01 11:00:00", "2024-06-01 12:00:00"},
	}

	got := NewMapper(MessageInputs()).Suggest(headers, sample)
	assert.Equal(t, "tweet_id", got[ColMessageID])
	assert.Equal(t, "screen_name", got[ColAuthorID])
	assert.Equal(t, "full_text", got[ColText])
	assert.Equal(t, "created_at", got[ColTimestamp])
}

func TestMapper_TypeVetoesBadHint(t *testing.T) {
	// "date_note" contains the "date" hint but holds free text, so it must
	// not map to the datetime input.
	headers := []string{"date_note", "posted_at", "author", "text"}
	sample := map[string][]string{
		"date_note": {"see notes about the date below", "another note about it"},
		"posted_at": {"2024-06-01 10:00:00", "2024-06-01 11:00:00"},
		"author":    {"alice", "bob"},
		"text":      {"hello there world", "more words here"},
	}

	got := NewMapper(MessageInputs()).Suggest(headers, sample)
	assert.Equal(t, "posted_at", got[ColTimestamp])
}

func TestImport_EndToEnd(t *testing.T) {
	path := writeFile(t, "posts.csv",
		"tweet_id,screen_name,full_text,created_at\n"+
			"100,alice,hello #world,2024-06-01 10:00:00\n"+
			"101,bob,go go go now,2024-06-01 11:00:00\n")

	im := &Importer{DataDir: t.TempDir(), Log: zerolog.Nop()}
	proj, err := im.Import("demo", path, nil)
	require.NoError(t, err)

	assert.Equal(t, "demo", proj.Name)
	assert.Equal(t, 2, proj.RowCount)
	assert.Equal(t, "screen_name", proj.ColumnMap[ColAuthorID])

	rows, err := parquetio.ReadAll[ports.MessageRow](proj.TablePath)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(0), rows[0].SurrogateID)
	assert.Equal(t, "alice", rows[0].AuthorID)
	assert.Equal(t, "hello #world", rows[0].Text)
	assert.NotZero(t, rows[0].Timestamp)
	assert.Equal(t, "101", rows[1].MessageID)
}

func TestImport_OverrideWins(t *testing.T) {
	path := writeFile(t, "posts.csv",
		"id,who,said,at\n"+
			"1,alice,hi there friend,2024-06-01 10:00:00\n")

	im := &Importer{DataDir: t.TempDir(), Log: zerolog.Nop()}
	proj, err := im.Import("demo", path, map[string]string{
		ColAuthorID:  "who",
		ColText:      "said",
		ColTimestamp: "at",
	})
	require.NoError(t, err)
	assert.Equal(t, "who", proj.ColumnMap[ColAuthorID])

	rows, err := parquetio.ReadAll[ports.MessageRow](proj.TablePath)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "hi there friend", rows[0].Text)
}

func TestImport_MissingRequiredColumn(t *testing.T) {
	path := writeFile(t, "bad.csv", "a,b\n1,2\n")

	im := &Importer{DataDir: t.TempDir(), Log: zerolog.Nop()}
	_, err := im.Import("demo", path, nil)
	assert.Error(t, err)
}

func TestOpen_RejectsUnknownExtension(t *testing.T) {
	_, err := Open("data.parquet")
	assert.Error(t, err)
}
