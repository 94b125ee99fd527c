package docs

import (
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/etnz/fiplan/config"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// readmeTopics extracts the "* topic: description" lines of the readme.
func readmeTopics(t *testing.T) []string {
	t.Helper()
	content, err := Topic(Readme)
	if err != nil {
		t.Fatalf("Topic(%q) unexpected error: %v", Readme, err)
	}
	topicRegex := regexp.MustCompile(`(?m)^\*\s+([^:]+):.*$`)
	var topics []string
	for _, m := range topicRegex.FindAllStringSubmatch(content, -1) {
		topics = append(topics, strings.TrimSpace(m[1]))
	}
	return topics
}

func TestTopics(t *testing.T) {
	// Every topic listed in the readme can be loaded, and every topic is listed.
	listed := readmeTopics(t)
	for _, topic := range listed {
		if _, err := Topic(topic); err != nil {
			t.Errorf("Topic(%q) unexpected error: %v", topic, err)
		}
	}
	all, err := All()
	if err != nil {
		t.Fatalf("All() unexpected error: %v", err)
	}
	for _, topic := range all {
		if !slices.Contains(listed, topic) {
			t.Errorf("topic %q is not listed in readme.md", topic)
		}
	}
	if _, err := Topic("nope"); err == nil {
		t.Errorf("Topic(nope) expected an error")
	}
	everything, err := Topic("*")
	if err != nil {
		t.Fatalf("Topic(*) unexpected error: %v", err)
	}
	if got := strings.Count(everything, "\n# "); got != len(all)-1 {
		t.Errorf("Topic(*) has %d titles after the first one, want %d", got, len(all)-1)
	}
}

// parse is a helper for test to parse a topic file.
func parse(t *testing.T, topic string) (ast.Node, []byte) {
	t.Helper()
	content, err := os.ReadFile(topic + ".md")
	if err != nil {
		t.Fatal(err)
	}
	return goldmark.DefaultParser().Parse(text.NewReader(content)), content
}

func TestTitles(t *testing.T) {
	// Every topic starts with its single level 1 heading.
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}
	for _, file := range files {
		topic := strings.TrimSuffix(file, ".md")
		root, _ := parse(t, topic)
		var h1 int
		ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
			if h, ok := n.(*ast.Heading); ok && entering && h.Level == 1 {
				h1++
			}
			return ast.WalkContinue, nil
		})
		if h1 != 1 {
			t.Errorf("%s has %d level 1 headings, want 1", file, h1)
		}
		if first, ok := root.FirstChild().(*ast.Heading); !ok || first.Level != 1 {
			t.Errorf("%s does not start with a level 1 heading", file)
		}
	}
}

func TestConfigExample(t *testing.T) {
	// The toml blocks of the config topic are valid configurations.
	root, content := parse(t, "config")
	var blocks []string
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !ok || !entering || string(fcb.Language(content)) != "toml" {
			return ast.WalkContinue, nil
		}
		var b strings.Builder
		for i := 0; i < fcb.Lines().Len(); i++ {
			line := fcb.Lines().At(i)
			b.Write(line.Value(content))
		}
		blocks = append(blocks, b.String())
		return ast.WalkContinue, nil
	})
	if len(blocks) == 0 {
		t.Fatal("config.md has no toml block")
	}
	for i, block := range blocks {
		path := filepath.Join(t.TempDir(), "fiplan.toml")
		if err := os.WriteFile(path, []byte(block), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := config.Load(path); err != nil {
			t.Errorf("config.md block %d: config.Load() unexpected error: %v", i, err)
		}
	}
}
