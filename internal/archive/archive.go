package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Frontmatter describes one archived digest.
type Frontmatter struct {
	Title    string `yaml:"title"`
	Course   string `yaml:"course"`
	Date     string `yaml:"date"`     // digest day, YYYY-MM-DD (UTC)
	Datetime string `yaml:"datetime"` // when the file was written
	Summary  string `yaml:"summary,omitempty"`
}

// WriteDaily stores a digest under <dir>/<course>/daily-YYYYMMDD.md with
// YAML frontmatter, overwriting any earlier write for the same day.
func WriteDaily(dir, course, summary, body string, now time.Time) (string, error) {
	utc := now.UTC()
	fm := Frontmatter{
		Title:    fmt.Sprintf("%s digest %s", course, utc.Format("2006-01-02")),
		Course:   course,
		Date:     utc.Format("2006-01-02"),
		Datetime: utc.Format("2006-01-02 15:04"),
		Summary:  summary,
	}
	head, err := yaml.Marshal(fm)
	if err != nil {
		return "", err
	}
	doc := "---\n" + string(head) + "---\n\n" + strings.TrimRight(body, "\n") + "\n"

	courseDir := filepath.Join(dir, course)
	if err := os.MkdirAll(courseDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(courseDir, fmt.Sprintf("daily-%s.md", utc.Format("20060102")))
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
