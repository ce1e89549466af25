// Package post reads the metadata header at the top of a knowledge post.
package post

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	openDelim  = "---"
	closeDelim = "..."
	bom        = "\ufeff"
)

// Header is the front matter of a post. Fields holds every key as parsed.
type Header struct {
	Title   string
	Path    string
	TLDR    string
	Authors []string
	Tags    []string
	Fields  map[string]interface{}
}

// ReadHeader parses the header of a post file. Markdown and R Markdown posts
// start with a YAML block between --- lines; notebooks carry the same block
// in their first markdown or raw cell. A file without a header yields an
// empty Header and no error.
func ReadHeader(filename string) (*Header, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading post: %w", err)
	}

	if strings.EqualFold(filepath.Ext(filename), ".ipynb") {
		data, err = firstNotebookCell(data)
		if err != nil {
			return nil, fmt.Errorf("reading notebook %s: %w", filename, err)
		}
	}

	fields, err := frontMatter(data)
	if err != nil {
		return nil, fmt.Errorf("parsing header of %s: %w", filename, err)
	}
	return newHeader(fields), nil
}

// frontMatter returns the YAML block opened by a line that is exactly ---
// and closed by the next line that is exactly --- or ..., or nil if there
// is none.
func frontMatter(data []byte) (map[string]interface{}, error) {
	data = bytes.TrimPrefix(data, []byte(bom))
	data = bytes.TrimLeft(data, "\n\r\t ")

	lines := strings.SplitAfter(string(data), "\n")
	if len(lines) == 0 || !isDelim(lines[0], openDelim) {
		return nil, nil
	}

	for i := 1; i < len(lines); i++ {
		if isDelim(lines[i], openDelim) || isDelim(lines[i], closeDelim) {
			var fields map[string]interface{}
			if err := yaml.Unmarshal([]byte(strings.Join(lines[1:i], "")), &fields); err != nil {
				return nil, err
			}
			return fields, nil
		}
	}
	return nil, nil
}

func isDelim(line, delim string) bool {
	return strings.TrimRight(line, " \t\r\n") == delim
}

type notebook struct {
	Cells []struct {
		CellType string          `json:"cell_type"`
		Source   json.RawMessage `json:"source"`
	} `json:"cells"`
}

func firstNotebookCell(data []byte) ([]byte, error) {
	var nb notebook
	if err := json.Unmarshal(data, &nb); err != nil {
		return nil, err
	}

	for _, cell := range nb.Cells {
		if cell.CellType != "markdown" && cell.CellType != "raw" {
			continue
		}
		// nbformat allows source as a list of lines or a single string.
		var lines []string
		if err := json.Unmarshal(cell.Source, &lines); err == nil {
			return []byte(strings.Join(lines, "")), nil
		}
		var text string
		if err := json.Unmarshal(cell.Source, &text); err != nil {
			return nil, fmt.Errorf("decoding cell source: %w", err)
		}
		return []byte(text), nil
	}
	return nil, nil
}

func newHeader(fields map[string]interface{}) *Header {
	h := &Header{Fields: fields}
	if fields == nil {
		return h
	}
	h.Title = stringField(fields, "title")
	h.Path = strings.Trim(stringField(fields, "path"), "/")
	h.TLDR = strings.TrimSpace(stringField(fields, "tldr"))
	h.Authors = listField(fields, "authors")
	h.Tags = listField(fields, "tags")
	return h
}

func stringField(fields map[string]interface{}, key string) string {
	switch v := fields[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// listField accepts both a YAML list and a single scalar.
func listField(fields map[string]interface{}, key string) []string {
	var out []string
	switch v := fields[key].(type) {
	case []interface{}:
		for _, item := range v {
			if s := strings.TrimSpace(fmt.Sprint(item)); s != "" {
				out = append(out, s)
			}
		}
	case string:
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// GenericCommitMessage is used when a post has no title.
const GenericCommitMessage = "Adding post"

// CommitMessage returns the default commit message for adding the post.
// ok is false when the header has no title and the generic message was used.
func CommitMessage(h *Header) (msg string, ok bool) {
	if h == nil || h.Title == "" {
		return GenericCommitMessage, false
	}
	return "Adding post: " + h.Title, true
}
