package config

import (
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/riskreg/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

// TaxonomyFile is the TOML layout of a taxonomy override
//
//	[[category]]
//	name = "Operational"
//	emoji = "⚙️"
//
//	  [[category.subcategory]]
//	  name = "Technical Architecture"
//	  risk_types = ["System Scalability", "Technical Debt Management"]
type TaxonomyFile struct {
	Categories []TaxonomyCategory `toml:"category"`
}

// TaxonomyCategory is a category entry of TaxonomyFile
type TaxonomyCategory struct {
	Name          string                `toml:"name"`
	Emoji         string                `toml:"emoji"`
	Subcategories []TaxonomySubcategory `toml:"subcategory"`
}

// TaxonomySubcategory is a subcategory entry of TaxonomyCategory
type TaxonomySubcategory struct {
	Name      string   `toml:"name"`
	RiskTypes []string `toml:"risk_types"`
}

// ToModel builds the taxonomy, enforcing its uniqueness rules
func (f *TaxonomyFile) ToModel() (*model.Taxonomy, error) {
	categories := make([]model.Category, len(f.Categories))
	for i, c := range f.Categories {
		subs := make([]model.Subcategory, len(c.Subcategories))
		for j, s := range c.Subcategories {
			subs[j] = model.Subcategory{Name: s.Name, RiskTypes: s.RiskTypes}
		}
		categories[i] = model.Category{Name: c.Name, Emoji: c.Emoji, Subcategories: subs}
	}

	t, err := model.NewTaxonomy(categories)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid taxonomy")
	}
	return t, nil
}

// LoadTaxonomy loads a taxonomy from a TOML file
func LoadTaxonomy(path string) (*model.Taxonomy, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read taxonomy file", goerr.V(ConfigPathKey, path))
	}

	var file TaxonomyFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML taxonomy", goerr.V(ConfigPathKey, path))
	}

	t, err := file.ToModel()
	if err != nil {
		return nil, goerr.Wrap(err, "taxonomy validation failed", goerr.V(ConfigPathKey, path))
	}
	return t, nil
}

// Taxonomy selects the taxonomy in use. Without a file the built-in one is used.
type Taxonomy struct {
	path string
}

func (x *Taxonomy) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "taxonomy-file",
			Usage:       "TOML file replacing the built-in risk taxonomy",
			Category:    "Taxonomy",
			Sources:     cli.EnvVars("RISKREG_TAXONOMY_FILE"),
			Destination: &x.path,
		},
	}
}

func (x Taxonomy) LogValue() slog.Value {
	if x.path == "" {
		return slog.StringValue("built-in")
	}
	return slog.StringValue(x.path)
}

// Path returns the configured file, empty for the built-in taxonomy
func (x *Taxonomy) Path() string {
	return x.path
}

func (x *Taxonomy) Configure() (*model.Taxonomy, error) {
	if x.path == "" {
		return model.DefaultTaxonomy(), nil
	}
	return LoadTaxonomy(x.path)
}
