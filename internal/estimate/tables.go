package estimate

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
)

// Source tables ship with Chinese file names; the loader maps them to the
// entity names the estimator works with.
var tableFiles = []struct {
	Table string
	File  string
}{
	{"orders", "订单表.csv"},
	{"customers", "客户表.csv"},
	{"sellers", "卖家表.csv"},
	{"payments", "支付表.csv"},
	{"order_items", "订单项表.csv"},
}

// candidate encodings, tried in order; the first clean decode wins. Latin-1
// last: it never rejects input, so it acts as the terminal fallback. UTF-8
// gets an explicit validity check because x/text's UTF-8 decoder substitutes
// invalid bytes instead of failing.
var candidateEncodings = []struct {
	Name   string
	Decode func([]byte) ([]byte, error)
}{
	{"gbk", simplifiedchinese.GBK.NewDecoder().Bytes},
	{"utf-8", func(b []byte) ([]byte, error) {
		if !utf8.Valid(b) {
			return nil, fmt.Errorf("invalid utf-8")
		}
		return b, nil
	}},
	{"gb18030", simplifiedchinese.GB18030.NewDecoder().Bytes},
	{"latin1", charmap.ISO8859_1.NewDecoder().Bytes},
}

// EncodingError reports that no candidate encoding produced a parseable file.
type EncodingError struct {
	Path  string
	Tried []string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("decode %s: no candidate encoding succeeded (tried %v)", e.Path, e.Tried)
}

// TableCounts holds the row count of each loaded source table. Tables that
// failed to load stay at zero; the estimator treats that as a degenerate but
// defined input rather than an error.
type TableCounts struct {
	counts map[string]int
}

func (t TableCounts) Rows(table string) int {
	return t.counts[table]
}

// Loaded reports how many tables were actually read.
func (t TableCounts) Loaded() int {
	n := 0
	for _, c := range t.counts {
		if c > 0 {
			n++
		}
	}
	return n
}

// LoadTables reads the five source tables from dir and returns their row
// counts. Missing files and decode failures are reported through warnf and
// skipped; nothing propagates past table loading.
func LoadTables(dir string, warnf func(format string, args ...any)) TableCounts {
	if warnf == nil {
		warnf = func(string, ...any) {}
	}
	counts := make(map[string]int, len(tableFiles))

	for _, tf := range tableFiles {
		path := filepath.Join(dir, tf.File)
		if _, err := os.Stat(path); err != nil {
			warnf("source table %s missing: %v", tf.Table, err)
			continue
		}

		n, err := countRows(path)
		if err != nil {
			warnf("source table %s unreadable: %v", tf.Table, err)
			continue
		}
		counts[tf.Table] = n
	}

	return TableCounts{counts: counts}
}

// countRows decodes path with the first working candidate encoding and
// returns the number of data rows (header excluded).
func countRows(path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	var tried []string
	for _, cand := range candidateEncodings {
		tried = append(tried, cand.Name)

		decoded, err := cand.Decode(raw)
		if err != nil {
			continue
		}
		n, err := csvRowCount(bytes.NewReader(decoded))
		if err != nil {
			continue
		}
		return n, nil
	}
	return 0, &EncodingError{Path: path, Tried: tried}
}

func csvRowCount(r io.Reader) (int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	rows := 0
	for {
		_, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
		rows++
	}
	if rows == 0 {
		return 0, nil
	}
	return rows - 1, nil // drop header
}
