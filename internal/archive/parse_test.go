package archive

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestWriteDailyThenParse(t *testing.T) {
	tmp := t.TempDir()
	now := time.Date(2020, 9, 19, 7, 0, 0, 0, time.UTC)
	body := "**CPSC221's posts for 2020-09-19**\nInstructor's Notes:\nNone for today!\n"

	path, err := WriteDaily(tmp, "CPSC221", "Quiet day.", body, now)
	if err != nil {
		t.Fatalf("WriteDaily: %v", err)
	}
	if want := filepath.Join(tmp, "CPSC221", "daily-20200919.md"); path != want {
		t.Fatalf("path = %q, want %q", path, want)
	}

	doc, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if got := doc.Frontmatter["course"]; got != "CPSC221" {
		t.Errorf("course = %v", got)
	}
	if got := doc.Frontmatter["date"]; got != "2020-09-19" {
		t.Errorf("date = %v", got)
	}
	if got := doc.Frontmatter["summary"]; got != "Quiet day." {
		t.Errorf("summary = %v", got)
	}
	if !strings.Contains(doc.Body, "None for today!") {
		t.Errorf("body lost content: %q", doc.Body)
	}
}

func TestWriteDailyOverwritesSameDay(t *testing.T) {
	tmp := t.TempDir()
	now := time.Date(2020, 9, 19, 7, 0, 0, 0, time.UTC)
	if _, err := WriteDaily(tmp, "CPSC221", "", "first\n", now); err != nil {
		t.Fatal(err)
	}
	path, err := WriteDaily(tmp, "CPSC221", "", "second\n", now.Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	doc, err := ParseFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(doc.Body, "second") || strings.Contains(doc.Body, "first") {
		t.Fatalf("same-day archive not overwritten: %q", doc.Body)
	}
}

func TestParseWithoutFrontmatter(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "no_fm.md")
	body := "# Hello\n\nNo frontmatter here.\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	doc, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile error: %v", err)
	}
	if len(doc.Frontmatter) != 0 {
		t.Fatalf("expected empty frontmatter, got: %+v", doc.Frontmatter)
	}
	if doc.Body != body {
		t.Errorf("body mismatch.\nwant: %q\n got: %q", body, doc.Body)
	}
}
