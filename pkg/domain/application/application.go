package application

import "encoding/json"

// Summary is the slice of an upstream application entry the frontend needs.
type Summary struct {
	Name string `json:"name"`
}

// NamesFromMetadata extracts application names from the gateway's
// applications listing, preserving order. Entries without a name field are
// skipped rather than rejected; the gateway is known to include partial
// entries while an application image is still importing.
func NamesFromMetadata(metadata json.RawMessage) ([]string, error) {
	var entries []Summary
	if err := json.Unmarshal(metadata, &entries); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Name == "" {
			continue
		}
		names = append(names, entry.Name)
	}
	return names, nil
}
