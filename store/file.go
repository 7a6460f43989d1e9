package store

import (
	"encoding/json"
	"io/ioutil"
	"os"

	"github.com/carecompass/carecompass-api/schema"
)

type fileStore struct {
	path string
}

// ListFacilities decodes the registry file, preserving its record order
func (f fileStore) ListFacilities() ([]schema.Facility, error) {
	d, err := ioutil.ReadFile(f.path)
	if err != nil {
		return nil, err
	}

	var facilities []schema.Facility
	if err := json.Unmarshal(d, &facilities); err != nil {
		return nil, err
	}

	return facilities, nil
}

// Ping - check the registry file is readable
func (f fileStore) Ping() error {
	_, err := os.Stat(f.path)
	return err
}

// Close is a no-op for a file-backed registry
func (f fileStore) Close() {}

// NewFileStore - facility registry backed by a JSON file
func NewFileStore(path string) FacilityStore {
	return &fileStore{
		path: path,
	}
}
