// Package store owns the workbook file: it loads, creates and saves the
// whole document and exposes the cell grid of each sheet.
//
// A Store is not safe for concurrent use; table.Accessor serializes access.
package store

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	apperr "github.com/ukaji3/propbook-go/pkg/propbook/errors"
)

// SheetDef names a sheet and its header row.
type SheetDef struct {
	Name    string
	Headers []string
}

// Store holds the in-memory document of one workbook file.
type Store struct {
	path   string
	file   *excelize.File
	logger *slog.Logger
}

// New returns a store for the workbook at path. Nothing is read until Load.
func New(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{path: path, logger: logger}
}

// Path returns the workbook file path.
func (s *Store) Path() string {
	return s.path
}

// Loaded reports whether a document is held in memory.
func (s *Store) Loaded() bool {
	return s.file != nil
}

// Exists reports whether the workbook file is present on disk.
func (s *Store) Exists() (bool, error) {
	_, err := os.Stat(s.path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, apperr.IOFailure("failed to stat workbook", err)
}

// Load parses the workbook file, replacing any document already in memory.
func (s *Store) Load() error {
	ok, err := s.Exists()
	if err != nil {
		return err
	}
	if !ok {
		return apperr.FileNotFound(s.path)
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return apperr.IOFailure("failed to open workbook", err)
	}
	s.replace(f)
	s.logger.Debug("workbook loaded", "path", s.path, "sheets", len(f.GetSheetList()))
	return nil
}

// Create builds a fresh document holding one header-only sheet per
// definition, in order. The previous document is discarded; nothing is
// written until Save.
func (s *Store) Create(defs []SheetDef) error {
	f := excelize.NewFile()
	for i, def := range defs {
		var err error
		if i == 0 {
			// NewFile always starts with Sheet1; reuse it for the first sheet.
			err = f.SetSheetName(f.GetSheetName(0), def.Name)
		} else {
			_, err = f.NewSheet(def.Name)
		}
		if err != nil {
			f.Close()
			return apperr.Wrapf(err, "failed to create sheet %q", def.Name)
		}
		if err := writeRow(f, def.Name, 1, headerValues(def.Headers)); err != nil {
			f.Close()
			return apperr.Wrapf(err, "failed to write headers of %q", def.Name)
		}
	}
	f.SetActiveSheet(0)
	s.replace(f)
	s.logger.Info("workbook created", "path", s.path, "sheets", len(defs))
	return nil
}

// Save writes the whole document to a temporary file beside the workbook
// and renames it into place. A failed save leaves the previous file intact.
func (s *Store) Save() error {
	if s.file == nil {
		return apperr.New(apperr.CodeInternalError, "no workbook to save")
	}
	if err := EnsureDir(filepath.Dir(s.path)); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return apperr.IOFailure("failed to create temporary workbook", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if tmpName != "" {
			os.Remove(tmpName)
		}
	}()

	if err := s.file.Write(tmp); err != nil {
		tmp.Close()
		return apperr.IOFailure("failed to write workbook", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return apperr.IOFailure("failed to set workbook permissions", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return apperr.IOFailure("failed to flush workbook", err)
	}
	if err := tmp.Close(); err != nil {
		return apperr.IOFailure("failed to close temporary workbook", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return apperr.IOFailure("failed to replace workbook", err)
	}
	tmpName = ""

	s.logger.Debug("workbook saved", "path", s.path)
	return nil
}

// Close releases the in-memory document.
func (s *Store) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

// SheetNames returns the sheet names in workbook order.
func (s *Store) SheetNames() []string {
	if s.file == nil {
		return nil
	}
	return s.file.GetSheetList()
}

// HasSheet reports whether the loaded document contains sheet.
func (s *Store) HasSheet(sheet string) bool {
	for _, name := range s.SheetNames() {
		if name == sheet {
			return true
		}
	}
	return false
}

// AddSheet appends a new sheet holding only headers.
func (s *Store) AddSheet(sheet string, headers []string) error {
	f, err := s.doc()
	if err != nil {
		return err
	}
	if _, err := f.NewSheet(sheet); err != nil {
		return apperr.Wrapf(err, "failed to create sheet %q", sheet)
	}
	return writeRow(f, sheet, 1, headerValues(headers))
}

// Grid returns the sheet as typed rows; index 0 is the header row.
func (s *Store) Grid(sheet string) ([][]any, error) {
	f, err := s.sheetDoc(sheet)
	if err != nil {
		return nil, err
	}
	grid, err := readGrid(f, sheet)
	if err != nil {
		return nil, apperr.Wrapf(err, "failed to read sheet %q", sheet)
	}
	return grid, nil
}

// WriteRow overwrites grid row gridIndex (0 is the header) with values.
// Writing one past the last row appends.
func (s *Store) WriteRow(sheet string, gridIndex int, values []any) error {
	f, err := s.sheetDoc(sheet)
	if err != nil {
		return err
	}
	if err := writeRow(f, sheet, gridIndex+1, values); err != nil {
		return apperr.Wrapf(err, "failed to write row %d of %q", gridIndex, sheet)
	}
	return nil
}

// RemoveRow deletes grid row gridIndex and shifts later rows up.
func (s *Store) RemoveRow(sheet string, gridIndex int) error {
	f, err := s.sheetDoc(sheet)
	if err != nil {
		return err
	}
	if err := f.RemoveRow(sheet, gridIndex+1); err != nil {
		return apperr.Wrapf(err, "failed to remove row %d of %q", gridIndex, sheet)
	}
	return nil
}

// UsedRange returns the bounding box of non-empty cells, e.g. "A1:E11".
func (s *Store) UsedRange(sheet string) (string, error) {
	f, err := s.sheetDoc(sheet)
	if err != nil {
		return "", err
	}
	return usedRange(f, sheet)
}

// EnsureDir creates dir and its parents if missing.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperr.IOFailure("failed to create data directory", err)
	}
	return nil
}

func (s *Store) doc() (*excelize.File, error) {
	if s.file == nil {
		return nil, apperr.New(apperr.CodeInternalError, "workbook not loaded")
	}
	return s.file, nil
}

func (s *Store) sheetDoc(sheet string) (*excelize.File, error) {
	f, err := s.doc()
	if err != nil {
		return nil, err
	}
	if !s.HasSheet(sheet) {
		return nil, apperr.SheetNotFound(sheet)
	}
	return f, nil
}

func (s *Store) replace(f *excelize.File) {
	if s.file != nil {
		s.file.Close()
	}
	s.file = f
}

func headerValues(headers []string) []any {
	values := make([]any, len(headers))
	for i, h := range headers {
		values[i] = h
	}
	return values
}
