package model

// SelectionState is the cascading Category → Subcategory → RiskType choice of the
// authoring form. Setters clear every choice that depends on the one they change,
// so a stale combination can never be observed.
type SelectionState struct {
	category    string
	subcategory string
	riskType    string
}

// NewSelection builds a state by applying the three setters in cascade order
func NewSelection(category, subcategory, riskType string) SelectionState {
	var s SelectionState
	s.SetCategory(category)
	s.SetSubcategory(subcategory)
	s.SetRiskType(riskType)
	return s
}

func (s *SelectionState) SetCategory(category string) {
	s.category = category
	s.subcategory = ""
	s.riskType = ""
}

func (s *SelectionState) SetSubcategory(subcategory string) {
	s.subcategory = subcategory
	s.riskType = ""
}

func (s *SelectionState) SetRiskType(riskType string) {
	s.riskType = riskType
}

func (s SelectionState) Category() string    { return s.category }
func (s SelectionState) Subcategory() string { return s.subcategory }
func (s SelectionState) RiskType() string    { return s.riskType }

// Reset clears every choice
func (s *SelectionState) Reset() {
	s.SetCategory("")
}

// SelectOptions are the choices available for each select of the form
type SelectOptions struct {
	Categories    []string `json:"categories"`
	Subcategories []string `json:"subcategories"`
	RiskTypes     []string `json:"risk_types"`
}

// Options returns the choices each select offers for the current state
func (s SelectionState) Options(t *Taxonomy) SelectOptions {
	return SelectOptions{
		Categories:    t.Categories(),
		Subcategories: t.Subcategories(s.category),
		RiskTypes:     t.RiskTypes(s.category, s.subcategory),
	}
}
