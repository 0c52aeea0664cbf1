package resume

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jason7337/go-cvpdf/internal/yamlutil"
)

//go:embed profile.yaml
var defaultProfileYAML []byte

// Profile is the non-localized résumé data. Fields named *Key hold catalog
// keys resolved in the active language.
type Profile struct {
	Name         string          `yaml:"name"`
	Emails       []string        `yaml:"emails"`
	Phone        string          `yaml:"phone"`
	Location     string          `yaml:"location"`
	Portfolio    string          `yaml:"portfolio"`
	GitHub       string          `yaml:"github"`
	LinkedIn     string          `yaml:"linkedin"`
	Keywords     string          `yaml:"keywords"`
	Creator      string          `yaml:"creator"`
	Experience   []Experience    `yaml:"experience"`
	Skills       []SkillCategory `yaml:"skills"`
	Projects     []Project       `yaml:"projects"`
	LanguageKeys []string        `yaml:"languageKeys"`
	Education    []Education     `yaml:"education"`
}

// Experience points at a catalog group with title, company, period,
// description and achievements.N keys.
type Experience struct {
	Key string `yaml:"key"`
}

// SkillCategory is a localized label with literal skill names.
type SkillCategory struct {
	LabelKey string   `yaml:"labelKey"`
	Items    []string `yaml:"items"`
}

// Project points at a catalog group with name, description and optional
// links keys.
type Project struct {
	Key          string   `yaml:"key"`
	Technologies []string `yaml:"technologies"`
}

// Education points at a catalog group with degree and school keys.
type Education struct {
	Key string `yaml:"key"`
}

// DefaultProfile returns the built-in profile.
func DefaultProfile() (*Profile, error) {
	return parseProfile(defaultProfileYAML, "profile.yaml")
}

// LoadProfile reads a profile from a YAML file.
func LoadProfile(path string) (*Profile, error) {
	var p Profile
	if err := yamlutil.ReadFile(os.DirFS(filepath.Dir(path)), filepath.Base(path), &p); err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	return validProfile(&p, path)
}

func parseProfile(data []byte, name string) (*Profile, error) {
	var p Profile
	if err := yamlutil.UnmarshalStrict(data, &p); err != nil {
		return nil, fmt.Errorf("parsing profile %s: %w", name, err)
	}
	return validProfile(&p, name)
}

func validProfile(p *Profile, name string) (*Profile, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("profile %s: name is required", name)
	}
	return p, nil
}

// Merge overrides p's contact fields with the non-empty fields of o.
func (p *Profile) Merge(o Profile) {
	if o.Name != "" {
		p.Name = o.Name
	}
	if len(o.Emails) > 0 {
		p.Emails = o.Emails
	}
	if o.Phone != "" {
		p.Phone = o.Phone
	}
	if o.Location != "" {
		p.Location = o.Location
	}
	if o.Portfolio != "" {
		p.Portfolio = o.Portfolio
	}
	if o.GitHub != "" {
		p.GitHub = o.GitHub
	}
	if o.LinkedIn != "" {
		p.LinkedIn = o.LinkedIn
	}
}
