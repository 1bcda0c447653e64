package main

import (
	"encoding/json"
	"fmt"
)

// toJSON renders a tool payload as indented JSON. Marshal failures are
// reported inline; the tool boundary never panics.
func toJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": "failed to encode response: %v"}`, err)
	}
	return string(data)
}
