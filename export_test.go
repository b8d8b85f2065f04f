package entropy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodePositionsEmpty(t *testing.T) {
	data, err := EncodePositions(NewRegistry(nil, nil))
	require.NoError(t, err)
	assert.Equal(t, `{"spawners":[],"targets":[]}`, string(data))
}

func TestDecodePositions(t *testing.T) {
	reg := NewRegistry([]Point{{1, 2}}, []Point{{3, 4}, {5.5, 6}})
	data, err := EncodePositions(reg)
	require.NoError(t, err)

	doc, err := DecodePositions(data)
	require.NoError(t, err)
	assert.Equal(t, reg.Points(Spawners), doc.Spawners)
	assert.Equal(t, reg.Points(Targets), doc.Targets)

	_, err = DecodePositions([]byte("[]"))
	assert.Error(t, err)
}

func TestFileDownloader(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	d := FileDownloader{Dir: dir}
	require.NoError(t, d.Download("../"+ExportFileName, []byte(`{}`)))

	got, err := os.ReadFile(filepath.Join(dir, ExportFileName))
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(got))
}
