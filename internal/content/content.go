// Package content holds the portfolio's static data, decoded from an
// embedded YAML document.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Zachkp/portfolio/internal/pipeline"
	"github.com/Zachkp/portfolio/internal/playground"
	"github.com/Zachkp/portfolio/internal/radar"
)

//go:embed portfolio.yaml
var embedded []byte

type Profile struct {
	Name     string   `yaml:"name"`
	Title    string   `yaml:"title"`
	Subtitle string   `yaml:"subtitle"`
	Tagline  string   `yaml:"tagline"`
	Resume   string   `yaml:"resume"`
	About    []string `yaml:"about"`
}

type Highlight struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

type SkillGroup struct {
	Title  string   `yaml:"title"`
	Skills []string `yaml:"skills"`
}

type Job struct {
	Title        string   `yaml:"title"`
	Company      string   `yaml:"company"`
	Location     string   `yaml:"location"`
	Period       string   `yaml:"period"`
	Type         string   `yaml:"type"`
	Description  string   `yaml:"description"`
	Achievements []string `yaml:"achievements"`
	Technologies []string `yaml:"technologies"`
}

type Project struct {
	Title        string   `yaml:"title"`
	Description  string   `yaml:"description"`
	Icon         string   `yaml:"icon"`
	Technologies []string `yaml:"technologies"`
	GitHubURL    string   `yaml:"github_url"`
	LiveURL      string   `yaml:"live_url"`
	Featured     bool     `yaml:"featured"`
}

type CaseStudy struct {
	ID           string   `yaml:"id"`
	Title        string   `yaml:"title"`
	Category     string   `yaml:"category"`
	Timeline     string   `yaml:"timeline"`
	Team         string   `yaml:"team"`
	Problem      string   `yaml:"problem"`
	Challenges   []string `yaml:"challenges"`
	Solution     string   `yaml:"solution"`
	Technologies []string `yaml:"technologies"`
	Outcome      string   `yaml:"outcome"`
	Improvements []string `yaml:"improvements"`
}

type Post struct {
	Title    string   `yaml:"title"`
	Excerpt  string   `yaml:"excerpt"`
	Date     string   `yaml:"date"`
	ReadTime string   `yaml:"read_time"`
	Tags     []string `yaml:"tags"`
	Featured bool     `yaml:"featured"`
}

// Published parses Date; it returns the zero time when Date is malformed.
func (p Post) Published() time.Time {
	t, _ := time.Parse(time.DateOnly, p.Date)
	return t
}

type Certification struct {
	ID           string   `yaml:"id"`
	Title        string   `yaml:"title"`
	Provider     string   `yaml:"provider"`
	Status       string   `yaml:"status"`
	Earned       string   `yaml:"earned"`
	Expires      string   `yaml:"expires"`
	CredentialID string   `yaml:"credential_id"`
	Progress     int      `yaml:"progress"`
	Skills       []string `yaml:"skills"`
	Description  string   `yaml:"description"`
}

type SecurityGate struct {
	Name   string   `yaml:"name"`
	Checks []string `yaml:"checks"`
	Status string   `yaml:"status"`
}

type PipelineMetric struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

type PipelineTiming struct {
	Label   string `yaml:"label"`
	Average string `yaml:"average"`
	Percent int    `yaml:"percent"`
}

type Pipeline struct {
	Stages  []pipeline.Stage `yaml:"stages"`
	Gates   []SecurityGate   `yaml:"gates"`
	Metrics []PipelineMetric `yaml:"metrics"`
	Timings []PipelineTiming `yaml:"timings"`
}

// SecurityFeature is one security-lab card with its before/after impact.
type SecurityFeature struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Before      string   `yaml:"before"`
	After       string   `yaml:"after"`
	Tools       []string `yaml:"tools"`
	Status      string   `yaml:"status"`
}

type ComplianceBadge struct {
	Name  string `yaml:"name"`
	Level string `yaml:"level"`
	Color string `yaml:"color"`
}

// SecurityDemo is a canned console session shown in the lab.
type SecurityDemo struct {
	ID      string   `yaml:"id"`
	Title   string   `yaml:"title"`
	Command string   `yaml:"command"`
	Output  []string `yaml:"output"`
}

type SecurityLab struct {
	Features []SecurityFeature `yaml:"features"`
	Badges   []ComplianceBadge `yaml:"badges"`
	Demos    []SecurityDemo    `yaml:"demos"`
}

// Feature looks up a feature by id.
func (l SecurityLab) Feature(id string) (SecurityFeature, bool) {
	for _, f := range l.Features {
		if f.ID == id {
			return f, true
		}
	}
	return SecurityFeature{}, false
}

type ContactLink struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
	Href  string `yaml:"href"`
}

// Portfolio is every section's data.
type Portfolio struct {
	Profile        Profile             `yaml:"profile"`
	Highlights     []Highlight         `yaml:"highlights"`
	Skills         []radar.MetricPoint `yaml:"skills"`
	SkillGroups    []SkillGroup        `yaml:"skill_groups"`
	Experience     []Job               `yaml:"experience"`
	Projects       []Project           `yaml:"projects"`
	CaseStudies    []CaseStudy         `yaml:"case_studies"`
	Posts          []Post              `yaml:"posts"`
	Certifications []Certification     `yaml:"certifications"`
	Pipeline       Pipeline            `yaml:"pipeline"`
	Security       SecurityLab         `yaml:"security_lab"`
	APIs           []playground.API    `yaml:"apis"`
	GitHub         playground.Stats    `yaml:"github"`
	Contact        []ContactLink       `yaml:"contact"`
}

var (
	ErrNoStages    = errors.New("content: pipeline has no stages")
	ErrNoSkills    = errors.New("content: no skills")
	ErrSkillValue  = errors.New("content: skill value outside [0,100]")
	ErrDuplicateID = errors.New("content: duplicate id")
)

// Load decodes the embedded portfolio.
func Load() (*Portfolio, error) {
	return Parse(embedded)
}

// LoadFile decodes a portfolio from path.
func LoadFile(path string) (*Portfolio, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	return Parse(b)
}

// Parse decodes and validates a YAML portfolio document.
func Parse(b []byte) (*Portfolio, error) {
	var p Portfolio
	if err := yaml.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks the invariants the simulator and renderer rely on.
func (p *Portfolio) Validate() error {
	if len(p.Pipeline.Stages) == 0 {
		return ErrNoStages
	}
	if err := unique("stage", len(p.Pipeline.Stages), func(i int) string { return p.Pipeline.Stages[i].ID }); err != nil {
		return err
	}
	if len(p.Skills) == 0 {
		return ErrNoSkills
	}
	for _, s := range p.Skills {
		if s.Value < 0 || s.Value > 100 {
			return fmt.Errorf("%w: %s=%v", ErrSkillValue, s.Label, s.Value)
		}
	}
	if err := unique("security feature", len(p.Security.Features), func(i int) string { return p.Security.Features[i].ID }); err != nil {
		return err
	}
	return unique("api", len(p.APIs), func(i int) string { return p.APIs[i].Key })
}

func unique(kind string, n int, key func(int) string) error {
	seen := make(map[string]struct{}, n)
	for i := range n {
		k := key(i)
		if _, ok := seen[k]; ok {
			return fmt.Errorf("%w: %s %q", ErrDuplicateID, kind, k)
		}
		seen[k] = struct{}{}
	}
	return nil
}

// FeaturedProjects returns projects flagged as featured, then the rest.
func (p *Portfolio) FeaturedProjects() (featured, other []Project) {
	for _, pr := range p.Projects {
		if pr.Featured {
			featured = append(featured, pr)
		} else {
			other = append(other, pr)
		}
	}
	return featured, other
}
