package replay

import (
	"encoding/json"
	"fmt"
)

// JSONDecoder decodes archives stored in the JSON interchange format the
// external container parser emits. One file holds one complete archive.
type JSONDecoder struct{}

func (JSONDecoder) Decode(name string, data []byte) (*Archive, error) {
	var a Archive
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("invalid archive JSON in %s: %w", name, err)
	}
	return &a, nil
}
