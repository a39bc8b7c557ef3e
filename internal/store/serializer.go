package store

import (
	"encoding/json"
	"fmt"

	"github.com/nhle/sailcheck/internal/model"
)

// Serializer converts the whole checklist collection to and from the
// string blob kept in the key-value store.
type Serializer interface {
	Marshal(checklists []model.Checklist) (string, error)
	Unmarshal(data string) ([]model.Checklist, error)
}

// snapshotVersion is bumped when the persisted shape changes.
const snapshotVersion = 1

type snapshot struct {
	Version    int               `json:"version"`
	Checklists []model.Checklist `json:"checklists"`
}

// JSONSerializer stores the collection as a versioned JSON document.
// Timestamps are written in RFC 3339 and revived as time.Time.
type JSONSerializer struct{}

// Marshal implements Serializer.
func (JSONSerializer) Marshal(checklists []model.Checklist) (string, error) {
	if checklists == nil {
		checklists = []model.Checklist{}
	}
	data, err := json.Marshal(snapshot{Version: snapshotVersion, Checklists: checklists})
	if err != nil {
		return "", fmt.Errorf("marshaling checklists: %w", err)
	}
	return string(data), nil
}

// Unmarshal implements Serializer.
func (JSONSerializer) Unmarshal(data string) ([]model.Checklist, error) {
	var snap snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, fmt.Errorf("unmarshaling checklists: %w", err)
	}
	if snap.Version > snapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}
	if snap.Checklists == nil {
		snap.Checklists = []model.Checklist{}
	}
	for i := range snap.Checklists {
		if snap.Checklists[i].Tasks == nil {
			snap.Checklists[i].Tasks = []model.Task{}
		}
	}
	return snap.Checklists, nil
}
