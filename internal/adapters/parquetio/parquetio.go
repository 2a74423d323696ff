// Package parquetio reads and writes the typed row slices analyzers
// exchange. It is the only package that touches the parquet library; the
// rest of the codebase works with ports row types and table paths.
package parquetio

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
)

// ReadAll loads every row of a parquet table into memory. The analyzer
// pipeline is batch-oriented over datasets that fit comfortably in RAM.
func ReadAll[T any](path string) ([]T, error) {
	rows, err := parquet.ReadFile[T](path)
	if err != nil {
		return nil, fmt.Errorf("read parquet %s: %w", filepath.Base(path), err)
	}
	return rows, nil
}

// WriteAll writes rows to path, creating parent directories as needed and
// replacing any existing table.
func WriteAll[T any](path string, rows []T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create table dir: %w", err)
	}
	if err := parquet.WriteFile(path, rows); err != nil {
		return fmt.Errorf("write parquet %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Writer appends rows to a table incrementally. Used by the importer, which
// streams source rows without holding the whole dataset.
type Writer[T any] struct {
	f *os.File
	w *parquet.GenericWriter[T]
}

// NewWriter creates the table file and its parent directories.
func NewWriter[T any](path string) (*Writer[T], error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create table dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create parquet %s: %w", filepath.Base(path), err)
	}
	return &Writer[T]{f: f, w: parquet.NewGenericWriter[T](f)}, nil
}

// Write appends a batch of rows.
func (w *Writer[T]) Write(rows []T) error {
	if _, err := w.w.Write(rows); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	return nil
}

// Close flushes row groups and the file footer. Must be called for the
// table to be readable.
func (w *Writer[T]) Close() error {
	if err := w.w.Close(); err != nil {
		w.f.Close()
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return w.f.Close()
}
