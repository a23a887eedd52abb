package render

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSV(t *testing.T) {
	out, err := CSV([]string{"id", "name"}, [][]string{{"1", "Ana, Maria"}, {"2", "Ion"}})
	require.NoError(t, err)
	assert.Equal(t, "id,name\n1,\"Ana, Maria\"\n2,Ion\n", string(out))
}

func TestCSV_RowWidthMismatch(t *testing.T) {
	_, err := CSV([]string{"id", "name"}, [][]string{{"1"}})
	assert.Error(t, err)
}

func TestPDF_Encrypted(t *testing.T) {
	out, err := PDF("Salary Slip - 2025-06", []Field{{Label: "Employee ID", Value: "e1"}}, "1960101123456")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Contains(t, string(out), "/Encrypt")
}

func TestPDF_Plain(t *testing.T) {
	out, err := PDF("Salary Slip - 2025-06", nil, "")
	require.NoError(t, err)
	assert.NotContains(t, string(out), "/Encrypt")
}

func TestZip(t *testing.T) {
	out, err := Zip([]ZipEntry{{Name: "a.pdf", Data: []byte("A")}, {Name: "b.pdf", Data: []byte("B")}})
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(out), int64(len(out)))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)
	assert.Equal(t, "a.pdf", zr.File[0].Name)

	rc, err := zr.File[1].Open()
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "B", string(data))
}
