package entropy

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ExportFileName is the file name offered for exported positions.
const ExportFileName = "entropy-particles.json"

// Downloader receives exported documents.
type Downloader interface {
	Download(name string, data []byte) error
}

// FileDownloader writes downloads into a directory.
type FileDownloader struct {
	Dir string
}

// Download writes data to Dir/name, creating Dir if needed.
func (d FileDownloader) Download(name string, data []byte) error {
	dir := d.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("download %s: %w", name, err)
	}
	path := filepath.Join(dir, filepath.Base(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("download %s: %w", name, err)
	}
	return nil
}

// PositionsDocument is the exported registry snapshot. Each field holds the
// registry it is named after.
type PositionsDocument struct {
	Spawners []Point `json:"spawners"`
	Targets  []Point `json:"targets"`
}

// EncodePositions serializes both registries.
func EncodePositions(reg *Registry) ([]byte, error) {
	doc := PositionsDocument{
		Spawners: reg.Points(Spawners),
		Targets:  reg.Points(Targets),
	}
	if doc.Spawners == nil {
		doc.Spawners = []Point{}
	}
	if doc.Targets == nil {
		doc.Targets = []Point{}
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode positions: %w", err)
	}
	return data, nil
}

// DecodePositions parses an exported document, for feeding back in as
// initial positions.
func DecodePositions(data []byte) (PositionsDocument, error) {
	var doc PositionsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return PositionsDocument{}, fmt.Errorf("decode positions: %w", err)
	}
	return doc, nil
}
