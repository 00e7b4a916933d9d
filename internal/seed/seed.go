// Package seed loads an initial task list from a JSON file. The file is
// only ever read: changes made in the session are not written back.
package seed

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/idilsaglam/tasks/internal/model"
	"github.com/idilsaglam/tasks/internal/store/memstore"
)

const schemaURL = "tasks://seed.schema.json"

const schemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["title", "description"],
    "additionalProperties": false,
    "properties": {
      "id":          {"type": "string", "minLength": 1},
      "title":       {"type": "string", "pattern": "\\S"},
      "description": {"type": "string", "pattern": "\\S"},
      "status":      {"enum": ["pending", "completed"]},
      "created_at":  {"type": "string", "format": "date-time"}
    }
  }
}`

var schema = jsonschema.MustCompileString(schemaURL, schemaJSON)

// Entry is one task as written in a seed file.
type Entry struct {
	ID          string       `json:"id,omitempty"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      model.Status `json:"status,omitempty"`
	CreatedAt   *time.Time   `json:"created_at,omitempty"`
}

// Task converts the entry, leaving absent fields zero for the store to fill.
func (e Entry) Task() model.Task {
	t := model.Task{
		ID:          e.ID,
		Title:       strings.TrimSpace(e.Title),
		Description: strings.TrimSpace(e.Description),
		Status:      e.Status,
	}
	if e.CreatedAt != nil {
		t.CreatedAt = *e.CreatedAt
	}
	return t
}

// Parse validates b against the seed schema and decodes it.
func Parse(b []byte) ([]Entry, error) {
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, schemaError(err)
	}

	var entries []Entry
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return entries, nil
}

// Read parses the seed file at path.
func Read(path string) ([]Entry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return Parse(b)
}

// Load reads path into store, keeping the file's order. An empty path loads
// nothing.
func Load(path string, store *memstore.Store) (int, error) {
	if path == "" {
		return 0, nil
	}
	entries, err := Read(path)
	if err != nil {
		return 0, fmt.Errorf("seed %s: %w", path, err)
	}
	for i, e := range entries {
		if _, err := store.Insert(e.Task()); err != nil {
			return i, fmt.Errorf("seed %s: entry %d: %w", path, i, err)
		}
	}
	return len(entries), nil
}

func schemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	var msgs []string
	collect(ve, &msgs)
	return fmt.Errorf("invalid seed file: %s", strings.Join(msgs, "; "))
}

func collect(ve *jsonschema.ValidationError, msgs *[]string) {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		*msgs = append(*msgs, loc+": "+ve.Message)
		return
	}
	for _, c := range ve.Causes {
		collect(c, msgs)
	}
}
