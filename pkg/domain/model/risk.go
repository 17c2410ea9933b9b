package model

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// Notion property names of the risk database
const (
	PropertyName        = "Name"
	PropertyCategory    = "Risk Category"
	PropertySubcategory = "Risk Sub-Category"
	PropertyRiskType    = "Risk Type"
)

// UncategorizedLabel is used when a stored record has no category
const UncategorizedLabel = "Uncategorized"

// UnnamedLabel is used when a stored record has no name
const UnnamedLabel = "Unnamed Risk"

// RiskRecord is a risk as stored in the Notion database. It is never mutated or deleted by riskreg.
type RiskRecord struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Subcategory string    `json:"subcategory"`
	RiskType    string    `json:"risk_type"`
	URL         string    `json:"url,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
}

// DisplayName returns the name, or UnnamedLabel if empty
func (r *RiskRecord) DisplayName() string {
	if r.Name == "" {
		return UnnamedLabel
	}
	return r.Name
}

// RiskForm is the authoring form of a new risk
type RiskForm struct {
	Name      string
	Selection SelectionState
}

// NewRiskForm builds a form with the cascade applied to the three choices
func NewRiskForm(name, category, subcategory, riskType string) *RiskForm {
	return &RiskForm{
		Name:      name,
		Selection: NewSelection(category, subcategory, riskType),
	}
}

// MissingFieldsMessage is reported when a required field of the form is empty
const MissingFieldsMessage = "please fill in all fields: name, category, subcategory, risk type"

// Validate checks that every field is filled and that the selection exists in taxonomy
func (f *RiskForm) Validate(taxonomy *Taxonomy) error {
	if strings.TrimSpace(f.Name) == "" ||
		f.Selection.Category() == "" ||
		f.Selection.Subcategory() == "" ||
		f.Selection.RiskType() == "" {
		return NewValidationError(MissingFieldsMessage,
			goerr.V("name", f.Name),
			goerr.V("category", f.Selection.Category()),
			goerr.V("subcategory", f.Selection.Subcategory()),
			goerr.V("risk_type", f.Selection.RiskType()),
		)
	}

	if taxonomy != nil && !taxonomy.Contains(f.Selection.Category(), f.Selection.Subcategory(), f.Selection.RiskType()) {
		return NewValidationError("selected category, subcategory and risk type do not match the taxonomy",
			goerr.V("category", f.Selection.Category()),
			goerr.V("subcategory", f.Selection.Subcategory()),
			goerr.V("risk_type", f.Selection.RiskType()),
		)
	}

	return nil
}

// Record returns the record the form describes. ID is left empty.
func (f *RiskForm) Record() *RiskRecord {
	return &RiskRecord{
		Name:        f.Name,
		Category:    f.Selection.Category(),
		Subcategory: f.Selection.Subcategory(),
		RiskType:    f.Selection.RiskType(),
	}
}

// Reset empties the form
func (f *RiskForm) Reset() {
	f.Name = ""
	f.Selection.Reset()
}
