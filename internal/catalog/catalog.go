// Package catalog loads skill records from the markdown content directory.
// The ranking jobs treat the catalog as a read-only data source, reloaded
// fresh on every run.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/skillsmarket/skillsmarket/pkg/logging"
)

// SkillRecord is one skill package as described by its markdown frontmatter.
type SkillRecord struct {
	Slug             string   `yaml:"slug"`
	Title            string   `yaml:"title"`
	Description      string   `yaml:"description"`
	Categories       []string `yaml:"categories"`
	Tags             []string `yaml:"tags"`
	Author           string   `yaml:"author"`
	Date             string   `yaml:"date"`
	LastUpdated      string   `yaml:"lastUpdated"`
	Featured         bool     `yaml:"featured"`
	FeaturedPriority int      `yaml:"featuredPriority"`
	FeaturedType     string   `yaml:"featuredType"` // "permanent" or "rotating"
	RepoURL          string   `yaml:"repoUrl"`

	// Body is the markdown content below the frontmatter
	Body string `yaml:"-"`
}

// PrimaryCategory returns the first category, or "" when none are set.
func (s *SkillRecord) PrimaryCategory() string {
	if len(s.Categories) == 0 {
		return ""
	}
	return s.Categories[0]
}

// Loader reads skill records from a content directory.
type Loader struct {
	dir    string
	logger *zap.Logger
}

// NewLoader creates a catalog loader for the given directory.
func NewLoader(dir string) *Loader {
	return &Loader{
		dir:    dir,
		logger: logging.WithComponent("catalog"),
	}
}

// Load reads every *.md file in the content directory and returns the parsed
// records sorted by slug. Files that fail to parse are skipped with a log line
// so one broken file cannot take down a scoring run.
func (l *Loader) Load() ([]SkillRecord, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read content dir %s: %w", l.dir, err)
	}

	var skills []SkillRecord
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		path := filepath.Join(l.dir, entry.Name())
		record, err := l.loadFile(path)
		if err != nil {
			l.logger.Warn("Skipping unparseable skill file",
				zap.String("path", path),
				zap.Error(err))
			continue
		}
		skills = append(skills, record)
	}

	sort.Slice(skills, func(i, j int) bool {
		return skills[i].Slug < skills[j].Slug
	})

	return skills, nil
}

// Get returns a single record by slug, or nil when not found.
func (l *Loader) Get(slug string) (*SkillRecord, error) {
	skills, err := l.Load()
	if err != nil {
		return nil, err
	}
	for i := range skills {
		if skills[i].Slug == slug {
			return &skills[i], nil
		}
	}
	return nil, nil
}

func (l *Loader) loadFile(path string) (SkillRecord, error) {
	doc, err := parseFile(path)
	if err != nil {
		return SkillRecord{}, err
	}

	var record SkillRecord
	if err := decodeFrontmatter(doc.frontmatter, &record); err != nil {
		return SkillRecord{}, fmt.Errorf("invalid frontmatter: %w", err)
	}
	record.Body = doc.body

	// Slug falls back to the file name
	if record.Slug == "" {
		record.Slug = strings.TrimSuffix(filepath.Base(path), ".md")
	}
	if record.Title == "" {
		return SkillRecord{}, fmt.Errorf("missing title")
	}

	return record, nil
}

// Filter narrows a skill list by free-text query and category.
func Filter(skills []SkillRecord, query, category string) []SkillRecord {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]SkillRecord, 0, len(skills))
	for _, s := range skills {
		if category != "" && !hasCategory(&s, category) {
			continue
		}
		if query != "" && !matchesQuery(&s, query) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func hasCategory(s *SkillRecord, category string) bool {
	for _, c := range s.Categories {
		if strings.EqualFold(c, category) {
			return true
		}
	}
	return false
}

func matchesQuery(s *SkillRecord, query string) bool {
	if strings.Contains(strings.ToLower(s.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(s.Description), query) {
		return true
	}
	for _, t := range s.Tags {
		if strings.Contains(strings.ToLower(t), query) {
			return true
		}
	}
	return false
}

// Sort orders skills in place by the given mode: "alpha", "newest" or "featured".
func Sort(skills []SkillRecord, mode string) {
	switch mode {
	case "newest":
		sort.SliceStable(skills, func(i, j int) bool {
			// ISO dates compare correctly as strings; empty dates sink to the end
			if skills[i].Date != skills[j].Date {
				return skills[i].Date > skills[j].Date
			}
			return skills[i].Slug < skills[j].Slug
		})
	case "featured":
		sort.SliceStable(skills, func(i, j int) bool {
			if skills[i].Featured != skills[j].Featured {
				return skills[i].Featured
			}
			if skills[i].FeaturedPriority != skills[j].FeaturedPriority {
				return skills[i].FeaturedPriority < skills[j].FeaturedPriority
			}
			return skills[i].Slug < skills[j].Slug
		})
	default:
		sort.SliceStable(skills, func(i, j int) bool {
			return strings.ToLower(skills[i].Title) < strings.ToLower(skills[j].Title)
		})
	}
}
