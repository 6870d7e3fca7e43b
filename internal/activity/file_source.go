package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// FileSource loads an activity snapshot exported by the host app as a single
// JSON file. A missing file means the host has exported nothing yet and
// yields an empty snapshot.
type FileSource struct {
	Path string
}

func NewFileSource(path string) FileSource {
	return FileSource{Path: path}
}

func (s FileSource) Load(ctx context.Context) (Data, error) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return Data{}, nil
		}
		return Data{}, fmt.Errorf("read activity snapshot: %w", err)
	}

	var d Data
	if err := json.Unmarshal(raw, &d); err != nil {
		return Data{}, fmt.Errorf("parse activity snapshot %s: %w", s.Path, err)
	}
	return d, nil
}
