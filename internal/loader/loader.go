// Package loader reads OpenAI conversation exports from disk.
package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/jasperwreed/chatgpt-stats/internal/models"
)

// DefaultPath is the conventional export filename, matching what OpenAI
// ships inside the data-export archive.
const DefaultPath = "conversations.json"

var (
	// ErrSourceNotFound reports a missing or unreadable export file.
	ErrSourceNotFound = errors.New("conversations file not found")
	// ErrInvalidFormat reports a file that is not valid export JSON.
	ErrInvalidFormat = errors.New("conversations file is not valid JSON")
)

// Load parses the export at path into conversation records. Boundary
// failures come back as ErrSourceNotFound or ErrInvalidFormat; malformed
// individual conversations decode to zero-valued fields and are handled
// downstream, never here.
func Load(path string) ([]models.ConversationRecord, error) {
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceNotFound, path, err)
	}

	var conversations []models.ConversationRecord
	if err := json.Unmarshal(data, &conversations); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFormat, path, err)
	}
	return conversations, nil
}
