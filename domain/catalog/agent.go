package catalog

// Agent is one directory entry. ID and Logo are assigned at creation time and
// never change afterwards; LastUpdated is system-authored on every write.
type Agent struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Website      string   `json:"website"`
	Description  string   `json:"description"`
	Category     []string `json:"category"`
	IsOpenSource bool     `json:"isOpenSource"`
	LastUpdated  string   `json:"lastUpdated"`
	Logo         Logo     `json:"logo"`
	Github       string   `json:"github,omitempty"`
	Twitter      string   `json:"twitter,omitempty"`
	Discord      string   `json:"discord,omitempty"`
}

// Catalog is the full ordered set of agents plus a collection-level timestamp.
// It is always read and persisted wholesale, never record by record.
type Catalog struct {
	Items       []Agent `json:"items"`
	LastUpdated string  `json:"lastUpdated"`
}

// FindIndex returns the position of the agent with the given id, or -1.
func (c Catalog) FindIndex(id string) int {
	for i, a := range c.Items {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// ContainsID reports whether an agent with the given id exists.
func (c Catalog) ContainsID(id string) bool {
	return c.FindIndex(id) >= 0
}
