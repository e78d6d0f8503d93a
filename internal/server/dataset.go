package server

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"

	"github.com/simonvc/p2pdesk/internal/exchange"
)

//go:embed fixtures/sandbox.json
var sandboxFixture []byte

// Dataset is the read-only content the sandbox serves.
type Dataset struct {
	Profile     exchange.Profile        `json:"profile"`
	Contractors []exchange.Counterparty `json:"contractors"`
}

// LoadDataset decodes and validates a dataset.
func LoadDataset(r io.Reader) (*Dataset, error) {
	var ds Dataset
	if err := json.NewDecoder(r).Decode(&ds); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	if err := ds.Profile.Validate(); err != nil {
		return nil, err
	}
	seen := make(map[exchange.ID]bool, len(ds.Contractors))
	for i := range ds.Contractors {
		cp := &ds.Contractors[i]
		if err := cp.Validate(); err != nil {
			return nil, fmt.Errorf("contractor %d: %w", i, err)
		}
		if seen[cp.ID] {
			return nil, fmt.Errorf("contractor %d: duplicate id %s", i, cp.ID)
		}
		seen[cp.ID] = true
	}
	return &ds, nil
}

// DefaultDataset is the embedded fixture.
func DefaultDataset() *Dataset {
	ds, err := LoadDataset(bytes.NewReader(sandboxFixture))
	if err != nil {
		panic("sandbox fixture: " + err.Error())
	}
	return ds
}

func (d *Dataset) contractor(id exchange.ID) (*exchange.Counterparty, bool) {
	for i := range d.Contractors {
		if d.Contractors[i].ID == id {
			return &d.Contractors[i], true
		}
	}
	return nil, false
}
