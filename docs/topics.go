// Package docs embeds the user documentation of fip, one markdown file per topic.
package docs

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

//go:embed *.md
var docs embed.FS

// Readme is the topic listing every other topic.
const Readme = "readme"

// Topic returns the content of a documentation topic. "*" is every topic.
func Topic(topic string) (string, error) {
	if topic == "*" {
		all, err := All()
		if err != nil {
			return "", err
		}
		return Topics(all...)
	}
	content, err := docs.ReadFile(topic + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", topic, err)
	}
	return string(content), nil
}

// Topics returns the content of several topics, in order, separated by an empty line.
func Topics(topics ...string) (string, error) {
	var b bytes.Buffer
	for _, topic := range topics {
		content, err := Topic(topic)
		if err != nil {
			return "", err
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// All returns the sorted names of every topic but the readme.
func All() ([]string, error) {
	entries, err := fs.ReadDir(docs, ".")
	if err != nil {
		return nil, err
	}
	var topics []string
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".md" {
			continue
		}
		if name := strings.TrimSuffix(e.Name(), ".md"); name != Readme {
			topics = append(topics, name)
		}
	}
	slices.Sort(topics)
	return topics, nil
}
