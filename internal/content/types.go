// Package content holds the portfolio's declarative data: every list a page
// section maps to markup.
package content

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Profile is the owner of the portfolio.
type Profile struct {
	FirstName string   `yaml:"first_name" validate:"required"`
	LastName  string   `yaml:"last_name"`
	Headline  string   `yaml:"headline"`
	Tagline   string   `yaml:"tagline"`
	Roles     []string `yaml:"roles" validate:"min=1,dive,required"`
	// Summary is markdown.
	Summary   string `yaml:"summary"`
	ResumeURL string `yaml:"resume_url"`
}

// FullName joins first and last name.
func (p Profile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// NavItem is a header or footer link to an in-page anchor.
type NavItem struct {
	Name   string `yaml:"name"`
	Target string `yaml:"target" validate:"required,startswith=#"`
}

// Anchor returns the target without its leading '#'.
func (n NavItem) Anchor() string {
	return strings.TrimPrefix(n.Target, "#")
}

var titleCaser = cases.Title(language.English)

// Label returns Name, or the title-cased anchor when Name is empty.
func (n NavItem) Label() string {
	if n.Name != "" {
		return n.Name
	}
	return titleCaser.String(strings.ReplaceAll(n.Anchor(), "-", " "))
}

// ContactChannel is one way to reach the owner.
type ContactChannel struct {
	Icon   string `yaml:"icon"`
	Label  string `yaml:"label" validate:"required"`
	Value  string `yaml:"value"`
	Link   string `yaml:"link" validate:"required"`
	Accent string `yaml:"accent"`
}

// External reports whether the link leaves the site.
func (c ContactChannel) External() bool {
	return strings.HasPrefix(c.Link, "http://") || strings.HasPrefix(c.Link, "https://")
}

// Highlight is an about-section card.
type Highlight struct {
	Icon        string `yaml:"icon"`
	Title       string `yaml:"title" validate:"required"`
	Description string `yaml:"description"`
	Accent      string `yaml:"accent"`
}

// Fact is a label/value pair in the about quick facts panel.
type Fact struct {
	Label string `yaml:"label" validate:"required"`
	Value string `yaml:"value"`
}

// ProficiencyRating drives one progress bar.
type ProficiencyRating struct {
	Name       string `yaml:"name" validate:"required"`
	Percentage int    `yaml:"percentage" validate:"gte=0,lte=100"`
	Accent     string `yaml:"accent"`
}

// ExperienceEntry is one position on the experience timeline.
type ExperienceEntry struct {
	Title            string   `yaml:"title" validate:"required"`
	Organization     string   `yaml:"organization" validate:"required"`
	Location         string   `yaml:"location"`
	Period           string   `yaml:"period"`
	Responsibilities []string `yaml:"responsibilities"`
	Accent           string   `yaml:"accent"`
}

// PeriodCurrent marks an ongoing position.
const PeriodCurrent = "Current"

// Current reports whether the position is ongoing.
func (e ExperienceEntry) Current() bool {
	return e.Period == PeriodCurrent
}

// EducationEntry is a degree, certification or learning track.
type EducationEntry struct {
	Icon        string `yaml:"icon"`
	Title       string `yaml:"title" validate:"required"`
	Subtitle    string `yaml:"subtitle"`
	Description string `yaml:"description"`
	Institution string `yaml:"institution"`
	Accent      string `yaml:"accent"`
}

// SkillCategory groups related skills.
type SkillCategory struct {
	Icon   string   `yaml:"icon"`
	Title  string   `yaml:"title" validate:"required"`
	Skills []string `yaml:"skills"`
	Accent string   `yaml:"accent"`
}

// Feature is a project feature line with its icon.
type Feature struct {
	Icon   string `yaml:"icon"`
	Text   string `yaml:"text" validate:"required"`
	Accent string `yaml:"accent"`
}

// Project is the featured project.
type Project struct {
	Title    string `yaml:"title" validate:"required"`
	Subtitle string `yaml:"subtitle"`
	// Description is markdown.
	Description string    `yaml:"description"`
	TechStack   []string  `yaml:"tech_stack"`
	Features    []Feature `yaml:"features" validate:"dive"`
	Highlights  []string  `yaml:"highlights"`
	CodeURL     string    `yaml:"code_url"`
	DemoURL     string    `yaml:"demo_url"`
}

// Footer is the static footer copy.
type Footer struct {
	Tagline  string    `yaml:"tagline"`
	Links    []NavItem `yaml:"links" validate:"dive"`
	Services []string  `yaml:"services"`
}

// Portfolio is the complete page content.
type Portfolio struct {
	Profile       Profile             `yaml:"profile"`
	Nav           []NavItem           `yaml:"nav" validate:"dive"`
	Channels      []ContactChannel    `yaml:"channels" validate:"dive"`
	Highlights    []Highlight         `yaml:"highlights" validate:"dive"`
	Facts         []Fact              `yaml:"facts" validate:"dive"`
	Strengths     []ProficiencyRating `yaml:"strengths" validate:"dive"`
	Experience    []ExperienceEntry   `yaml:"experience" validate:"dive"`
	Education     []EducationEntry    `yaml:"education" validate:"dive"`
	LearningAreas []string            `yaml:"learning_areas"`
	Skills        []SkillCategory     `yaml:"skills" validate:"dive"`
	Concepts      []ProficiencyRating `yaml:"concepts" validate:"dive"`
	Project       Project             `yaml:"project"`
	Availability  []string            `yaml:"availability"`
	Footer        Footer              `yaml:"footer"`
}

// HeroChannels returns the channels shown in the hero banner: those with an
// actual destination.
func (p *Portfolio) HeroChannels() []ContactChannel {
	out := make([]ContactChannel, 0, len(p.Channels))
	for _, c := range p.Channels {
		if c.Link != "" && c.Link != "#" {
			out = append(out, c)
		}
	}
	return out
}
