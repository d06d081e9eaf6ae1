package perf

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Header is the exact persisted column set, in order. The derived
// return_ratio column is never written.
var Header = []string{
	"query_name", "database", "execution_time_ms", "query_time_ms",
	"return_time_ms", "rows_returned", "query_type",
}

const utf8BOM = "\xef\xbb\xbf"

// WriteCSV writes records in the canonical schema. The file starts with a
// UTF-8 BOM so Excel opens it correctly.
func WriteCSV(w io.Writer, records []Record) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.QueryName,
			string(r.Database),
			strconv.FormatFloat(r.ExecutionTimeMs, 'f', 2, 64),
			strconv.FormatFloat(r.QueryTimeMs, 'f', 2, 64),
			strconv.FormatFloat(r.ReturnTimeMs, 'f', 2, 64),
			strconv.Itoa(r.RowsReturned),
			string(r.QueryType),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes records to path. A write failure here is fatal to a run;
// callers surface it rather than continuing.
func WriteFile(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteCSV(f, records); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// ReadCSV parses records from the canonical schema, tolerating a leading BOM.
func ReadCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("results file: no header row")
	}

	head := rows[0]
	head[0] = strings.TrimPrefix(head[0], utf8BOM)
	if len(head) < len(Header) {
		return nil, fmt.Errorf("results file: expected %d columns, got %d", len(Header), len(head))
	}
	for i, name := range Header {
		if head[i] != name {
			return nil, fmt.Errorf("results file: column %d is %q, want %q", i, head[i], name)
		}
	}

	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("results file row %d: %w", i+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// ReadFile loads records from path.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}

func parseRow(row []string) (Record, error) {
	var rec Record
	if len(row) < len(Header) {
		return rec, fmt.Errorf("expected %d fields, got %d", len(Header), len(row))
	}

	exec, err := strconv.ParseFloat(row[2], 64)
	if err != nil {
		return rec, fmt.Errorf("execution_time_ms: %w", err)
	}
	query, err := strconv.ParseFloat(row[3], 64)
	if err != nil {
		return rec, fmt.Errorf("query_time_ms: %w", err)
	}
	ret, err := strconv.ParseFloat(row[4], 64)
	if err != nil {
		return rec, fmt.Errorf("return_time_ms: %w", err)
	}
	rows, err := strconv.Atoi(row[5])
	if err != nil {
		return rec, fmt.Errorf("rows_returned: %w", err)
	}

	rec = Record{
		QueryName:       row[0],
		Database:        Database(row[1]),
		ExecutionTimeMs: exec,
		QueryTimeMs:     query,
		ReturnTimeMs:    ret,
		RowsReturned:    rows,
		QueryType:       QueryType(row[6]),
	}
	return rec, nil
}
