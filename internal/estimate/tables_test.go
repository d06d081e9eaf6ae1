package estimate

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"
)

func writeTable(t *testing.T, dir, file string, data []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, file), data, 0o644))
}

func gbkBytes(t *testing.T, s string) []byte {
	t.Helper()
	out, err := simplifiedchinese.GBK.NewEncoder().Bytes([]byte(s))
	require.NoError(t, err)
	return out
}

func TestLoadTablesUTF8(t *testing.T) {
	dir := t.TempDir()
	writeTable(t, dir, "订单表.csv", []byte("order_id,status\n1,delivered\n2,shipped\n3,delivered\n"))

	tables := LoadTables(dir, nil)
	assert.Equal(t, 3, tables.Rows("orders"))
	assert.Equal(t, 1, tables.Loaded())
}

func TestLoadTablesGBK(t *testing.T) {
	dir := t.TempDir()
	writeTable(t, dir, "客户表.csv", gbkBytes(t, "客户编号,城市\n1,北京\n2,上海\n"))

	tables := LoadTables(dir, nil)
	assert.Equal(t, 2, tables.Rows("customers"))
}

func TestLoadTablesMissingFilesWarn(t *testing.T) {
	dir := t.TempDir()
	writeTable(t, dir, "支付表.csv", []byte("payment_id\n1\n"))

	var warnings []string
	tables := LoadTables(dir, func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	})

	assert.Equal(t, 1, tables.Rows("payments"))
	assert.Equal(t, 0, tables.Rows("orders"))
	assert.Len(t, warnings, 4, "four of five tables are missing")
	for _, w := range warnings {
		assert.Contains(t, w, "missing")
	}
}

func TestLoadTablesEmptyDir(t *testing.T) {
	tables := LoadTables(t.TempDir(), nil)
	assert.Equal(t, 0, tables.Loaded())
	assert.Equal(t, 0, tables.Rows("orders"))
}

func TestCountRowsHeaderOnly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "t.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b,c\n"), 0o644))

	n, err := countRows(path)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestCountRowsRaggedRows(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "t.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2\n3,4,5\n6\n"), 0o644))

	n, err := countRows(path)
	require.NoError(t, err)
	assert.Equal(t, 3, n, "ragged field counts must still count")
}

func TestEncodingErrorMessage(t *testing.T) {
	err := &EncodingError{Path: "x.csv", Tried: []string{"gbk", "utf-8"}}
	assert.Contains(t, err.Error(), "x.csv")
	assert.Contains(t, err.Error(), "gbk")
}
