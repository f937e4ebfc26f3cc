package reader

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/vegasq/mochadb/errors"
)

// Reader is an open Parquet file. Rows come back as maps keyed by field
// name.
type Reader struct {
	path   string
	file   *os.File
	pqFile *parquet.File
}

// NewReader opens path. A missing file fails with errors.ErrNotFound and a
// file that is not Parquet with errors.ErrNotProcessable.
func NewReader(path string) (*Reader, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrapf(errors.ErrNotFound, "parquet file %s", path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrapf(err, "stat %s", path)
	}
	pf, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrapf(errors.ErrNotProcessable, "%s is not a parquet file: %v", path, err)
	}
	return &Reader{path: path, file: f, pqFile: pf}, nil
}

// ReadAll loads every row. Groups become nested maps and repeated fields
// become slices.
func (r *Reader) ReadAll() ([]map[string]any, error) {
	rows := make([]map[string]any, 0, r.pqFile.NumRows())

	pr := parquet.NewReader(r.pqFile)
	defer func() { _ = pr.Close() }()

	for {
		row := map[string]any{}
		if err := pr.Read(&row); err != nil {
			if errors.Is(err, io.EOF) {
				return rows, nil
			}
			return nil, errors.Wrapf(err, "read row %d of %s", len(rows), r.path)
		}
		rows = append(rows, row)
	}
}

// Schema returns the file schema.
func (r *Reader) Schema() *parquet.Schema {
	return r.pqFile.Schema()
}

// Close releases the file. Later calls do nothing.
func (r *Reader) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// maxFiles bounds how many files one glob pattern may expand to
const maxFiles = 1000

// IsGlob reports whether pattern contains glob wildcards.
func IsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[]{}")
}

// ExpandPattern returns the files a path or glob pattern names. A plain
// path is returned as is.
func ExpandPattern(pattern string) ([]string, error) {
	if !IsGlob(pattern) {
		return []string{pattern}, nil
	}

	matches, err := filepath.Glob(pattern)
	switch {
	case err != nil:
		return nil, errors.Wrapf(errors.ErrInvalidQuery, "glob %q: %v", pattern, err)
	case len(matches) == 0:
		return nil, errors.Wrapf(errors.ErrNotFound, "no files match %s", pattern)
	case len(matches) > maxFiles:
		return nil, errors.WithHintf(
			errors.Newf("%s matches %d files", pattern, len(matches)),
			"narrow the pattern to at most %d files", maxFiles)
	}
	return matches, nil
}

// ReadMultipleFiles reads all rows from the files a path or glob pattern
// names.
//
// Rows read through a glob pattern are tagged with a FileColumn entry
// holding the source file path. A plain path is read without the tag.
func ReadMultipleFiles(pattern string) ([]map[string]any, error) {
	paths, err := ExpandPattern(pattern)
	if err != nil {
		return nil, err
	}

	tag := IsGlob(pattern)
	var out []map[string]any
	for _, path := range paths {
		rows, err := readFile(path)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			if tag {
				row[FileColumn] = path
			}
			out = append(out, row)
		}
	}
	return out, nil
}

func readFile(path string) ([]map[string]any, error) {
	r, err := NewReader(path)
	if err != nil {
		return nil, err
	}

	rows, err := r.ReadAll()
	if cerr := r.Close(); err == nil && cerr != nil {
		err = errors.Wrapf(cerr, "close %s", path)
	}
	if err != nil {
		return nil, err
	}
	return rows, nil
}
