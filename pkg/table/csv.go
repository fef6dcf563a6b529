package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	skyerrors "github.com/oxygene76/skycalc/pkg/errors"
)

// ReadCSV reads a comma-separated table with a mandatory header row.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, skyerrors.Wrap(skyerrors.ErrInvalidTable, "missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	header = trimBOM(header)

	records, err := reader.ReadAll()
	if err != nil {
		return nil, skyerrors.Wrapf(skyerrors.ErrInvalidTable, "malformed CSV: %v", err)
	}

	cols := make([]Column, len(header))
	for i, name := range header {
		cols[i] = Column{Name: name, Values: make([]Value, len(records))}
	}
	for r, record := range records {
		for i := range cols {
			cols[i].Values[r] = Parse(record[i])
		}
	}

	return FromColumns(cols...)
}

// ReadCSVFile reads a table from a file.
func ReadCSVFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadCSV(f)
}

// ReadHeader returns the column names of a CSV file without reading its rows.
func ReadHeader(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	header, err := csv.NewReader(f).Read()
	if err == io.EOF {
		return nil, skyerrors.Wrapf(skyerrors.ErrInvalidTable, "%s: missing header row", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	return trimBOM(header), nil
}

// WriteCSV writes the table with a header row. Missing cells are empty.
func (t *Table) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.Names()); err != nil {
		return err
	}

	record := make([]string, len(t.columns))
	for r := 0; r < t.rows; r++ {
		for i, c := range t.columns {
			record[i] = c.Values[r].String()
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteCSVFile writes the table to path, creating or truncating it.
func (t *Table) WriteCSVFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := t.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func trimBOM(header []string) []string {
	if len(header) > 0 {
		if b := []byte(header[0]); len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
			header[0] = string(b[3:])
		}
	}
	return header
}
