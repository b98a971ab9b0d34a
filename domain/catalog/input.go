package catalog

import (
	"time"

	"agentdir/pkg/utils"
)

// AgentInput carries the user-editable fields of an agent. ID, logo and
// lastUpdated are never accepted from the client; they are assigned by the
// mutation path.
type AgentInput struct {
	Name         string   `json:"name" validate:"required"`
	Website      string   `json:"website" validate:"required,url"`
	Description  string   `json:"description" validate:"required"`
	Category     []string `json:"category" validate:"required,min=1,unique,dive,required"`
	IsOpenSource bool     `json:"isOpenSource"`
	Github       string   `json:"github,omitempty"`
	Twitter      string   `json:"twitter,omitempty"`
	Discord      string   `json:"discord,omitempty"`
}

// Validate enforces the business rules that apply at submission time: name,
// website and description present, website a well-formed absolute URL, and a
// non-empty category list without duplicates. Documents entering through the
// overlay or an import are deliberately not held to these rules.
func (i AgentInput) Validate() error {
	return utils.ValidateStruct(i)
}

// NewAgent assembles a fresh agent from validated input. The id and logo are
// fixed here for the lifetime of the record.
func NewAgent(i AgentInput, now time.Time) Agent {
	return Agent{
		ID:           NewAgentID(i.Name, now),
		Name:         i.Name,
		Website:      i.Website,
		Description:  i.Description,
		Category:     i.Category,
		IsOpenSource: i.IsOpenSource,
		LastUpdated:  utils.FormatRFC3339(now),
		Logo:         NewLogo(i.Name),
		Github:       i.Github,
		Twitter:      i.Twitter,
		Discord:      i.Discord,
	}
}

// Apply merges the input over an existing agent, preserving the write-once id
// and logo and stamping a new lastUpdated.
func (i AgentInput) Apply(existing Agent, now time.Time) Agent {
	return Agent{
		ID:           existing.ID,
		Name:         i.Name,
		Website:      i.Website,
		Description:  i.Description,
		Category:     i.Category,
		IsOpenSource: i.IsOpenSource,
		LastUpdated:  utils.FormatRFC3339(now),
		Logo:         existing.Logo,
		Github:       i.Github,
		Twitter:      i.Twitter,
		Discord:      i.Discord,
	}
}
