package domain

import (
	"encoding/json"
	"errors"
	"time"
)

const placeholderContactEmail = "your@email.com"

// Portfolio is the singleton document backing the public site. The payload
// is serialized to text at the persistence boundary and typed everywhere
// else.
type Portfolio struct {
	ID        int64
	Name      string
	Language  string
	Data      PortfolioData
	UpdatedBy *int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PortfolioData is the structured document schema.
type PortfolioData struct {
	Name     string          `json:"name"`
	Hero     HeroSection     `json:"hero"`
	About    AboutSection    `json:"about"`
	Skills   SkillsSection   `json:"skills"`
	Projects ProjectsSection `json:"projects"`
	Contact  ContactSection  `json:"contact"`
	Footer   FooterSection   `json:"footer"`
}

// HeroSection is the landing banner.
type HeroSection struct {
	Headline    string `json:"headline"`
	Subheadline string `json:"subheadline"`
}

// AboutSection is the biography block.
type AboutSection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// SkillCategory groups skills under one label.
type SkillCategory struct {
	Name  string `json:"name"`
	Items string `json:"items"`
}

// SkillsSection lists skill categories.
type SkillsSection struct {
	Title      string          `json:"title"`
	Categories []SkillCategory `json:"categories"`
}

// Project describes one showcased project.
type Project struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ProjectURL  string `json:"projectUrl"`
	GithubURL   string `json:"githubUrl"`
}

// ProjectsSection lists showcased projects.
type ProjectsSection struct {
	Title string    `json:"title"`
	Items []Project `json:"items"`
}

// ContactLink is one outbound contact reference.
type ContactLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ContactSection carries the owner's contact details. Email is the
// delivery address for the contact form.
type ContactSection struct {
	Title   string        `json:"title"`
	Message string        `json:"message"`
	Email   string        `json:"email"`
	Links   []ContactLink `json:"links"`
}

// FooterSection is the site footer.
type FooterSection struct {
	Year string `json:"year"`
	Name string `json:"name"`
}

// Validate checks that all sections are present.
func (d *PortfolioData) Validate() error {
	if d.Name == "" {
		return errors.New("portfolio data: name required")
	}
	if d.Hero.Headline == "" {
		return errors.New("portfolio data: hero.headline required")
	}
	if d.About.Title == "" {
		return errors.New("portfolio data: about.title required")
	}
	if d.Skills.Title == "" {
		return errors.New("portfolio data: skills.title required")
	}
	if d.Projects.Title == "" {
		return errors.New("portfolio data: projects.title required")
	}
	if d.Contact.Title == "" {
		return errors.New("portfolio data: contact.title required")
	}
	if d.Contact.Email == "" {
		return errors.New("portfolio data: contact.email required")
	}
	if d.Footer.Name == "" {
		return errors.New("portfolio data: footer.name required")
	}
	return nil
}

// Normalize backfills fields older stored documents may lack. Read-path
// only; submitted payloads must carry the fields themselves.
func (d *PortfolioData) Normalize() {
	if d.Contact.Email == "" {
		d.Contact.Email = placeholderContactEmail
	}
}

// ParsePortfolioData decodes a stored payload, failing loudly on malformed
// or structurally incomplete documents. Normalize runs before Validate so
// older documents missing the contact email still load.
func ParsePortfolioData(raw []byte) (*PortfolioData, error) {
	var data PortfolioData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	data.Normalize()
	if err := data.Validate(); err != nil {
		return nil, err
	}
	return &data, nil
}

// DefaultPortfolioData returns the fixed payload used to lazily initialize
// the document on first read.
func DefaultPortfolioData() PortfolioData {
	return PortfolioData{
		Name: "Your Name",
		Hero: HeroSection{
			Headline:    "Welcome to My Portfolio",
			Subheadline: "I'm a developer creating amazing digital experiences.",
		},
		About: AboutSection{
			Title:   "About Me",
			Content: "Tell your story here...",
		},
		Skills: SkillsSection{
			Title: "Skills",
			Categories: []SkillCategory{
				{Name: "Frontend", Items: "React, Next.js, TypeScript"},
				{Name: "Backend", Items: "Go, Fiber, PostgreSQL"},
			},
		},
		Projects: ProjectsSection{
			Title: "Projects",
			Items: []Project{
				{
					Name:        "Sample Project",
					Description: "A sample project description",
					ProjectURL:  "#",
					GithubURL:   "#",
				},
			},
		},
		Contact: ContactSection{
			Title:   "Contact",
			Message: "Let's get in touch!",
			Email:   placeholderContactEmail,
			Links: []ContactLink{
				{Name: "Email", URL: "mailto:your@email.com"},
				{Name: "GitHub", URL: "https://github.com/yourusername"},
			},
		},
		Footer: FooterSection{Year: "2024", Name: "Your Name"},
	}
}
