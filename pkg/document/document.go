// Package document owns the drafting document: floors of plan entities,
// sheet settings, JSON persistence and the single-writer store through
// which every mutation flows as an explicit command, giving undo/redo for
// free.
package document

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/OpenPlanLab/OpenPlanCAD/pkg/plan"
)

// Document is a complete drafting file.
type Document struct {
	Title    string       `json:"title"`
	Sheet    Sheet        `json:"sheet"`
	Floors   []plan.Floor `json:"floors"`
	Active   int          `json:"active"`
	Created  time.Time    `json:"created"`
	Modified time.Time    `json:"modified"`
}

// New creates a document with a single empty ground floor.
func New(title string) Document {
	now := time.Now().UTC()
	return Document{
		Title:    title,
		Sheet:    DefaultSheet(),
		Floors:   []plan.Floor{plan.NewFloor("Floor 1", 0)},
		Created:  now,
		Modified: now,
	}
}

// Clone deep-copies the document.
func (d Document) Clone() Document {
	c := d
	c.Floors = make([]plan.Floor, len(d.Floors))
	for i, f := range d.Floors {
		c.Floors[i] = f.Clone()
	}
	return c
}

// ActiveFloor returns a pointer to the active floor, clamping a stale
// index.
func (d *Document) ActiveFloor() *plan.Floor {
	if len(d.Floors) == 0 {
		d.Floors = []plan.Floor{plan.NewFloor("Floor 1", 0)}
	}
	if d.Active < 0 || d.Active >= len(d.Floors) {
		d.Active = 0
	}
	return &d.Floors[d.Active]
}

// Save writes the document as indented JSON.
func Save(path string, d *Document) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("document: encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("document: write %s: %w", path, err)
	}
	return nil
}

// Load reads a document from disk. Legacy rectangle rooms and roofs are
// normalized to polygons while decoding.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("document: read %s: %w", path, err)
	}
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("document: decode %s: %w", path, err)
	}
	if len(d.Floors) == 0 {
		d.Floors = []plan.Floor{plan.NewFloor("Floor 1", 0)}
	}
	if d.Active < 0 || d.Active >= len(d.Floors) {
		d.Active = 0
	}
	return &d, nil
}
