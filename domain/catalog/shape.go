package catalog

// Structural shape checks over generically decoded JSON. These are the loose
// gate applied to externally supplied documents (the overlay slot and imported
// files) before they are trusted. They are type checks only: a record with an
// unparseable website or an empty category list still passes here. Business
// rules live in AgentInput.Validate and apply only on the admin write path.

// ValidAgentShape reports whether v is structurally an agent record.
func ValidAgentShape(v any) bool {
	m, ok := v.(map[string]any)
	if !ok {
		return false
	}
	for _, key := range []string{"id", "name", "website", "description", "lastUpdated"} {
		if _, ok := m[key].(string); !ok {
			return false
		}
	}
	if _, ok := m["isOpenSource"].(bool); !ok {
		return false
	}
	cats, ok := m["category"].([]any)
	if !ok {
		return false
	}
	for _, c := range cats {
		if _, ok := c.(string); !ok {
			return false
		}
	}
	return true
}

// ValidCatalogShape reports whether v is structurally a catalog document:
// items is a sequence of structurally valid agent records and lastUpdated is
// a string.
func ValidCatalogShape(v any) bool {
	m, ok := v.(map[string]any)
	if !ok {
		return false
	}
	if _, ok := m["lastUpdated"].(string); !ok {
		return false
	}
	items, ok := m["items"].([]any)
	if !ok {
		return false
	}
	for _, item := range items {
		if !ValidAgentShape(item) {
			return false
		}
	}
	return true
}
