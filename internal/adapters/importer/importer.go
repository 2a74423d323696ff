package importer

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/magpielabs/magpie/internal/adapters/parquetio"
	"github.com/magpielabs/magpie/internal/domain/semantic"
	"github.com/magpielabs/magpie/internal/ports"
)

// Canonical message input names. Analyzer specs use these for their primary
// inputs; the importer converts mapped source columns into MessageRow fields
// by these names.
const (
	ColMessageID = "message_id"
	ColAuthorID  = "user_id"
	ColText      = "message_text"
	ColTimestamp = "timestamp"
)

// MessageInputs describes the canonical message columns with the name hints
// used for automatic mapping.
func MessageInputs() []ports.InputColumn {
	return []ports.InputColumn{
		{
			Name: ColMessageID, HumanName: "Message ID", Type: ports.TypeIdentifier,
			Description: "Unique identifier of the post",
			NameHints:   []string{"message id", "message_id", "msg_id", "post id", "post_id", "tweet id", "tweet_id", "status_id"},
		},
		{
			Name: ColAuthorID, HumanName: "Author ID", Type: ports.TypeIdentifier,
			Description: "Identifier of the posting account",
			NameHints:   []string{"user", "author", "account", "screen_name", "screen name", "poster", "handle"},
		},
		{
			Name: ColText, HumanName: "Message text", Type: ports.TypeText,
			Description: "Post body text",
			NameHints:   []string{"text", "message", "content", "body", "tweet"},
		},
		{
			Name: ColTimestamp, HumanName: "Timestamp", Type: ports.TypeDatetime,
			Description: "When the post was published",
			NameHints:   []string{"time", "date", "created", "posted", "timestamp"},
		},
	}
}

// sampleSize rows feed column type inference.
const sampleSize = 100

const writeBatch = 1000

// Source abstracts CSV and Excel inputs: a header row and a record stream.
type Source interface {
	Headers() []string
	Read() ([]string, error)
	Close() error
}

// Open picks a source by file extension.
func Open(path string) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv", ".txt":
		return OpenCSV(path, DetectLayout(path))
	case ".xlsx", ".xlsm":
		return OpenExcel(path)
	default:
		return nil, fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
}

// Importer converts a source file into a project with a messages parquet
// table under DataDir.
type Importer struct {
	DataDir string
	Log     zerolog.Logger
}

// Import reads the whole source, maps its columns onto the canonical message
// inputs (columnMap overrides win over automatic suggestion), and writes the
// messages table. Rows with no parseable timestamp keep a zero timestamp
// rather than being dropped.
func (im *Importer) Import(name, srcPath string, columnMap map[string]string) (*ports.Project, error) {
	src, err := Open(srcPath)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	headers := src.Headers()
	var records [][]string
	for {
		rec, err := src.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	im.Log.Info().Str("project", name).Str("file", srcPath).
		Int("rows", len(records)).Msg("source loaded")

	mapped := im.resolveColumns(headers, records, columnMap)
	for _, required := range []string{ColAuthorID, ColText, ColTimestamp} {
		if mapped[required] == "" {
			return nil, fmt.Errorf("no source column mapped to %s", required)
		}
	}

	idx := make(map[string]int, len(mapped))
	for input, header := range mapped {
		for i, h := range headers {
			if h == header {
				idx[input] = i
				break
			}
		}
	}
	for _, required := range []string{ColAuthorID, ColText, ColTimestamp} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("mapped column %q for %s not found in source headers", mapped[required], required)
		}
	}

	tablePath := filepath.Join(im.DataDir, "projects", name, "messages.parquet")
	w, err := parquetio.NewWriter[ports.MessageRow](tablePath)
	if err != nil {
		return nil, err
	}

	batch := make([]ports.MessageRow, 0, writeBatch)
	for i, rec := range records {
		row := ports.MessageRow{
			SurrogateID: int64(i),
			AuthorID:    rec[idx[ColAuthorID]],
			Text:        rec[idx[ColText]],
		}
		if j, ok := idx[ColMessageID]; ok {
			row.MessageID = rec[j]
		} else {
			row.MessageID = fmt.Sprintf("row-%d", i)
		}
		if t := semantic.ParseDatetime(rec[idx[ColTimestamp]]); !t.IsZero() {
			row.Timestamp = t.Unix()
		}
		batch = append(batch, row)
		if len(batch) == writeBatch {
			if err := w.Write(batch); err != nil {
				w.Close()
				return nil, err
			}
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		if err := w.Write(batch); err != nil {
			w.Close()
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	im.Log.Info().Str("project", name).Str("table", tablePath).Msg("messages table written")
	return &ports.Project{
		Name:       name,
		SourceFile: srcPath,
		RowCount:   len(records),
		ColumnMap:  mapped,
		TablePath:  tablePath,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// resolveColumns merges automatic suggestions with caller overrides.
func (im *Importer) resolveColumns(headers []string, records [][]string, override map[string]string) map[string]string {
	sample := make(map[string][]string, len(headers))
	n := len(records)
	if n > sampleSize {
		n = sampleSize
	}
	for i, h := range headers {
		col := make([]string, 0, n)
		for _, rec := range records[:n] {
			col = append(col, rec[i])
		}
		sample[h] = col
	}

	mapped := NewMapper(MessageInputs()).Suggest(headers, sample)
	for input, header := range override {
		if header == "" {
			delete(mapped, input)
			continue
		}
		mapped[input] = header
	}
	return mapped
}
