package bookmarks

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Node types used in Chrome's exported bookmark JSON.
const (
	NodeTypeURL    = "url"
	NodeTypeFolder = "folder"
)

// Node is one entry in the exported bookmark tree: either a URL leaf or a
// folder with children.
type Node struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	URL      string `json:"url,omitempty"`
	Children []Node `json:"children,omitempty"`
}

// File mirrors the top level of Chrome's Bookmarks file. Roots maps root
// folder names (bookmark_bar, other, synced) to their trees.
type File struct {
	Roots map[string]Node `json:"roots"`
}

// Record is a flattened bookmark ready for indexing. Title, Content and
// ScrapeErr are filled in by page enrichment; they are empty for records
// that have not been scraped yet or whose scrape failed.
type Record struct {
	URL        string
	Name       string
	FolderPath string

	Title     string
	Content   string
	ScrapeErr error
}

// ParseFile reads a Chrome Bookmarks export and returns the flattened
// records from all roots.
func ParseFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bookmarks file: %w", err)
	}
	return Parse(data)
}

// Parse flattens the bookmark JSON into records. Each record's FolderPath is
// the slash-joined chain of ancestor folder names, root name included, with
// no leading or trailing slash.
func Parse(data []byte) ([]Record, error) {
	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse bookmarks file: %w", err)
	}

	var records []Record
	for _, root := range file.Roots {
		records = append(records, flatten(root, root.Name)...)
	}
	return records, nil
}

func flatten(node Node, path string) []Record {
	var records []Record

	switch node.Type {
	case NodeTypeURL:
		records = append(records, Record{
			URL:        node.URL,
			Name:       node.Name,
			FolderPath: strings.Trim(path, "/"),
		})
	case NodeTypeFolder:
		for _, child := range node.Children {
			childPath := path
			if child.Type == NodeTypeFolder {
				childPath = path + "/" + child.Name
			}
			records = append(records, flatten(child, childPath)...)
		}
	default:
		// Untyped containers still carry children in some exports
		for _, child := range node.Children {
			records = append(records, flatten(child, path)...)
		}
	}

	return records
}
