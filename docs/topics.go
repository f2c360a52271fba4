// Package docs holds the help topics of the sbk command.
package docs

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed *.md
var files embed.FS

// index is the file listing the topics. It is not a topic itself.
const index = "readme"

// GetTopic returns the markdown of topic. "*" is every topic.
func GetTopic(topic string) (string, error) {
	if topic == "*" {
		all, err := GetAllTopics()
		if err != nil {
			return "", err
		}
		return GetTopics(all...)
	}
	content, err := files.ReadFile(topic + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", topic, err)
	}
	return string(content), nil
}

// GetTopics returns the markdown of each topic, separated by a blank line.
func GetTopics(topics ...string) (string, error) {
	parts := make([]string, 0, len(topics))
	for _, topic := range topics {
		content, err := GetTopic(topic)
		if err != nil {
			return "", err
		}
		parts = append(parts, content)
	}
	return strings.Join(parts, "\n"), nil
}

// GetAllTopics returns the topic names in lexical order.
func GetAllTopics() ([]string, error) {
	names, err := fs.Glob(files, "*.md")
	if err != nil {
		return nil, err
	}
	topics := make([]string, 0, len(names))
	for _, name := range names {
		if topic := strings.TrimSuffix(name, ".md"); topic != index {
			topics = append(topics, topic)
		}
	}
	return topics, nil
}
