package perf

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []Record {
	return []Record{
		{"Q1", PostgreSQL, 123.45, 92.59, 30.86, 5000, QuerySimple},
		{"Q1", InfluxDB, 310.00, 170.50, 139.50, 5000, QuerySimple},
		{"I1", DuckDBIndexed, 12.34, 11.11, 1.23, 42, QueryCRUD},
	}
}

func TestWriteCSVStartsWithBOM(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleRecords()))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\xef\xbb\xbf"), "output must start with a UTF-8 BOM")
	assert.True(t, strings.HasPrefix(out, "\xef\xbb\xbf"+strings.Join(Header, ",")),
		"header row must follow the BOM")
}

func TestCSVRoundTrip(t *testing.T) {
	in := sampleRecords()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, in))

	out, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Len(t, out, len(in))
	for i := range in {
		assert.Equal(t, in[i], out[i], "record %d", i)
	}
}

func TestReadCSVWithoutBOM(t *testing.T) {
	const body = "query_name,database,execution_time_ms,query_time_ms,return_time_ms,rows_returned,query_type\n" +
		"Q2,DuckDB,55.00,41.25,13.75,1000,simple\n"

	out, err := ReadCSV(strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Q2", out[0].QueryName)
	assert.Equal(t, DuckDB, out[0].Database)
	assert.Equal(t, 1000, out[0].RowsReturned)
}

func TestReadCSVRejectsWrongHeader(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("name,db,ms\nQ1,DuckDB,5\n"))
	assert.Error(t, err)

	_, err = ReadCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestReadCSVRejectsBadNumbers(t *testing.T) {
	body := strings.Join(Header, ",") + "\n" +
		"Q1,DuckDB,abc,1.00,2.00,5,simple\n"
	_, err := ReadCSV(strings.NewReader(body))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "execution_time_ms")
}

func TestWriteAndReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	in := sampleRecords()
	require.NoError(t, WriteFile(path, in))

	out, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
