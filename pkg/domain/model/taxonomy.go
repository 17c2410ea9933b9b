package model

import (
	"slices"

	"github.com/m-mizutani/goerr/v2"
)

// DefaultEmoji is the icon used for categories without a registered emoji
const DefaultEmoji = "📋"

var (
	ErrEmptyTaxonomy        = goerr.New("taxonomy has no category")
	ErrDuplicateCategory    = goerr.New("duplicate category")
	ErrDuplicateSubcategory = goerr.New("subcategory belongs to more than one category")
	ErrDuplicateRiskType    = goerr.New("risk type belongs to more than one subcategory")
	ErrEmptyTaxonomyName    = goerr.New("taxonomy entry name is empty")
)

// Category is the first level of the risk taxonomy
type Category struct {
	Name          string        `json:"name"`
	Emoji         string        `json:"emoji"`
	Subcategories []Subcategory `json:"subcategories"`
}

// Subcategory is the second level of the risk taxonomy
type Subcategory struct {
	Name      string   `json:"name"`
	RiskTypes []string `json:"risk_types"`
}

// Taxonomy is the immutable Category → Subcategory → RiskType tree
type Taxonomy struct {
	categories []Category
	byName     map[string]int
}

// NewTaxonomy validates categories and builds a Taxonomy. The input is copied.
func NewTaxonomy(categories []Category) (*Taxonomy, error) {
	if len(categories) == 0 {
		return nil, goerr.Wrap(ErrEmptyTaxonomy, "invalid taxonomy")
	}

	t := &Taxonomy{
		categories: make([]Category, len(categories)),
		byName:     make(map[string]int, len(categories)),
	}

	subOwner := make(map[string]string)
	typeOwner := make(map[string]string)

	for i, cat := range categories {
		if cat.Name == "" {
			return nil, goerr.Wrap(ErrEmptyTaxonomyName, "category name is empty", goerr.V("index", i))
		}
		if _, ok := t.byName[cat.Name]; ok {
			return nil, goerr.Wrap(ErrDuplicateCategory, "invalid taxonomy", goerr.V("category", cat.Name))
		}
		t.byName[cat.Name] = i

		copied := Category{
			Name:          cat.Name,
			Emoji:         cat.Emoji,
			Subcategories: make([]Subcategory, len(cat.Subcategories)),
		}

		for j, sub := range cat.Subcategories {
			if sub.Name == "" {
				return nil, goerr.Wrap(ErrEmptyTaxonomyName, "subcategory name is empty", goerr.V("category", cat.Name), goerr.V("index", j))
			}
			if owner, ok := subOwner[sub.Name]; ok {
				return nil, goerr.Wrap(ErrDuplicateSubcategory, "invalid taxonomy",
					goerr.V("subcategory", sub.Name),
					goerr.V("category", cat.Name),
					goerr.V("owner", owner))
			}
			subOwner[sub.Name] = cat.Name

			for _, rt := range sub.RiskTypes {
				if rt == "" {
					return nil, goerr.Wrap(ErrEmptyTaxonomyName, "risk type is empty", goerr.V("subcategory", sub.Name))
				}
				if owner, ok := typeOwner[rt]; ok {
					return nil, goerr.Wrap(ErrDuplicateRiskType, "invalid taxonomy",
						goerr.V("risk_type", rt),
						goerr.V("subcategory", sub.Name),
						goerr.V("owner", owner))
				}
				typeOwner[rt] = sub.Name
			}

			copied.Subcategories[j] = Subcategory{
				Name:      sub.Name,
				RiskTypes: slices.Clone(sub.RiskTypes),
			}
		}

		t.categories[i] = copied
	}

	return t, nil
}

// Categories returns category names in declaration order
func (t *Taxonomy) Categories() []string {
	names := make([]string, len(t.categories))
	for i, cat := range t.categories {
		names[i] = cat.Name
	}
	return names
}

// Subcategories returns subcategory names of category, or empty if category is unknown
func (t *Taxonomy) Subcategories(category string) []string {
	cat, ok := t.category(category)
	if !ok {
		return []string{}
	}

	names := make([]string, len(cat.Subcategories))
	for i, sub := range cat.Subcategories {
		names[i] = sub.Name
	}
	return names
}

// RiskTypes returns risk types of the pair, or empty unless both are selected and the pair is valid
func (t *Taxonomy) RiskTypes(category, subcategory string) []string {
	sub, ok := t.subcategory(category, subcategory)
	if !ok {
		return []string{}
	}
	return slices.Clone(sub.RiskTypes)
}

// Emoji returns the icon of category, DefaultEmoji for unknown categories
func (t *Taxonomy) Emoji(category string) string {
	if cat, ok := t.category(category); ok && cat.Emoji != "" {
		return cat.Emoji
	}
	return DefaultEmoji
}

// Contains reports whether the triple exists in the taxonomy
func (t *Taxonomy) Contains(category, subcategory, riskType string) bool {
	sub, ok := t.subcategory(category, subcategory)
	if !ok {
		return false
	}
	return slices.Contains(sub.RiskTypes, riskType)
}

// Tree returns a deep copy of the taxonomy
func (t *Taxonomy) Tree() []Category {
	tree := make([]Category, len(t.categories))
	for i, cat := range t.categories {
		subs := make([]Subcategory, len(cat.Subcategories))
		for j, sub := range cat.Subcategories {
			subs[j] = Subcategory{Name: sub.Name, RiskTypes: slices.Clone(sub.RiskTypes)}
		}
		tree[i] = Category{Name: cat.Name, Emoji: t.Emoji(cat.Name), Subcategories: subs}
	}
	return tree
}

func (t *Taxonomy) category(name string) (Category, bool) {
	if name == "" {
		return Category{}, false
	}
	idx, ok := t.byName[name]
	if !ok {
		return Category{}, false
	}
	return t.categories[idx], true
}

func (t *Taxonomy) subcategory(category, subcategory string) (Subcategory, bool) {
	if subcategory == "" {
		return Subcategory{}, false
	}
	cat, ok := t.category(category)
	if !ok {
		return Subcategory{}, false
	}
	for _, sub := range cat.Subcategories {
		if sub.Name == subcategory {
			return sub, true
		}
	}
	return Subcategory{}, false
}

// DefaultTaxonomy returns the built-in risk taxonomy
func DefaultTaxonomy() *Taxonomy {
	t, err := NewTaxonomy(defaultCategories)
	if err != nil {
		panic("built-in taxonomy is invalid: " + err.Error())
	}
	return t
}

var defaultCategories = []Category{
	{
		Name:  "Operational",
		Emoji: "⚙️",
		Subcategories: []Subcategory{
			{Name: "Technical Architecture", RiskTypes: []string{
				"Code Reliability and Quality",
				"System Scalability",
				"Performance and Optimisation",
				"Technical Debt Management",
				"Architecture Flexibility/Adaptability",
			}},
			{Name: "Operational Infrastructure", RiskTypes: []string{
				"System Monitoring and Alerting",
				"Logging and Observability",
				"Disaster Recovery & Backup Management",
				"Infrastructure Resilience",
			}},
			{Name: "Development Processes", RiskTypes: []string{
				"CI/CD Pipeline Reliability",
				"Testing Coverage and Strategy",
				"Code Maintainability",
				"Documentation Quality",
				"Version Control Practices",
			}},
			{Name: "Integration Points", RiskTypes: []string{
				"API Reliability",
				"Third-party Dependencies",
				"Service Integrations",
			}},
			{Name: "Data Management", RiskTypes: []string{
				"Data Integrity and Quality",
				"Database Performance",
				"Data Migration Risks",
				"Storage and Retention",
				"Data Recovery",
			}},
			{Name: "User Experience", RiskTypes: []string{
				"Cross-platform Compatibility",
				"Performance Perception",
				"Error Handling and User Feedback",
				"Feature Discoverability",
			}},
			{Name: "Team Organisational Risks", RiskTypes: []string{
				"Team Knowledge Sharing",
				"Team Skill Development",
				"Team Delivery Process",
				"Vendor Interface Management",
				"Internal Team Communication",
			}},
			{Name: "Release Management", RiskTypes: []string{
				"Deployment Strategies",
				"Rollback Capabilities",
				"Feature Flagging",
				"Release Scheduling",
				"User Communication",
			}},
		},
	},
	{
		Name:  "Security",
		Emoji: "🔒",
		Subcategories: []Subcategory{
			{Name: "Access Control", RiskTypes: []string{
				"Authentication and Authorization",
				"Network Security",
				"Physical Security",
			}},
			{Name: "Data Security", RiskTypes: []string{
				"Data Protection and Privacy",
				"Cloud Security Configuration",
				"Endpoint Security",
			}},
			{Name: "Security Operations", RiskTypes: []string{
				"Vulnerability Management",
				"Security Testing",
				"Incident Detection and Response",
				"Malware Protection",
			}},
			{Name: "Security Governance", RiskTypes: []string{
				"Third-party Security Assessments",
				"Security Awareness and Training",
			}},
		},
	},
	{
		Name:  "Regulatory",
		Emoji: "📜",
		Subcategories: []Subcategory{
			{Name: "Data Compliance", RiskTypes: []string{
				"Data Privacy Regulations",
				"International Data Transfer Regulations",
				"Records Retention Requirements",
			}},
			{Name: "Legal Requirements", RiskTypes: []string{
				"Compliance Requirements",
				"Industry-Specific Regulations",
				"Contractual Obligations",
				"Licensing Compliance",
			}},
			{Name: "Documentation & Reporting", RiskTypes: []string{
				"Audit Trails and Evidence",
				"Reporting Requirements",
			}},
			{Name: "Special Legal Considerations", RiskTypes: []string{
				"Accessibility Compliance",
				"Intellectual Property Protection",
				"Export Control Compliance",
			}},
		},
	},
}
