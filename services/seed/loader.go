package seed

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"

	"bookingdesk/models"
)

var errNotArray = errors.New("content is not a JSON array")

// LoadFixture parses a JSON array of records. Records are returned as read,
// with no transformation.
func LoadFixture(path string) ([]models.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &LoadError{Path: path, Err: errNotArray}
	}

	var records []models.Record
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return records, nil
}
