package docs

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"testing"
)

// readmeTopics returns the topics listed in readme.md.
func readmeTopics(t *testing.T) []string {
	t.Helper()
	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	var topics []string
	scanner := bufio.NewScanner(file)
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	for scanner.Scan() {
		if m := topicRegex.FindStringSubmatch(scanner.Text()); len(m) > 1 {
			topics = append(topics, strings.TrimSpace(m[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning readme.md: %v", err)
	}
	return topics
}

func TestTopics(t *testing.T) {
	// Every topic listed in readme.md can be loaded and has a title.
	listed := readmeTopics(t)
	for _, topic := range listed {
		t.Run("load_"+topic, func(t *testing.T) {
			if _, err := GetTopic(topic); err != nil {
				t.Errorf("failed to get topic %q: %v", topic, err)
			}
			if _, err := Title(topic); err != nil {
				t.Errorf("Title(%q) error = %v", topic, err)
			}
		})
	}

	// Every .md file is listed in readme.md.
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatalf("failed to glob *.md: %v", err)
	}
	for _, file := range files {
		topic := strings.TrimSuffix(filepath.Base(file), ".md")
		if topic != Readme && !slices.Contains(listed, topic) {
			t.Errorf("topic %q is not listed in readme.md", topic)
		}
	}

	all, err := GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics() error = %v", err)
	}
	sortedListed := slices.Sorted(slices.Values(listed))
	if !slices.Equal(all, sortedListed) {
		t.Errorf("GetAllTopics() = %v, want %v", all, sortedListed)
	}
}

func TestTitle(t *testing.T) {
	testCases := map[string]string{
		Readme:      "stocktracker",
		"costbasis": "Cost basis",
		"shell":     "The interactive shell",
	}
	for topic, want := range testCases {
		got, err := Title(topic)
		if err != nil || got != want {
			t.Errorf("Title(%q) = %q, %v, want %q", topic, got, err, want)
		}
	}
	if _, err := Title("nope"); err == nil {
		t.Errorf("Title(nope) error = nil")
	}
}

func TestGetTopics(t *testing.T) {
	all, err := GetTopics("*")
	if err != nil {
		t.Fatalf("GetTopics(*) error = %v", err)
	}
	for _, heading := range []string{"# Cost basis", "# Prices", "# Reports", "# The interactive shell"} {
		if !strings.Contains(all, heading) {
			t.Errorf("GetTopics(*) does not contain %q", heading)
		}
	}
	if _, err := GetTopics("costbasis", "missing"); err == nil {
		t.Errorf("GetTopics with a missing topic: error = nil")
	}
}
