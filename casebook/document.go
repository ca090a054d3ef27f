package casebook

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Sentinel errors
var (
	ErrInvalidFrontMatter = errors.New("invalid front matter")
	ErrInvalidCase        = errors.New("invalid case")
	ErrNoCases            = errors.New("document has no cases")
)

// Document is a markdown file of evaluation cases.
//
// The optional YAML front matter sets the narration locale. Each level-2
// heading opens a case holding an ```expr block with the expression and a
// ```yaml block with the expectation.
type Document struct {
	Title  string
	Locale string
	Cases  []Case
}

// Case is one expression and what evaluating it must produce.
type Case struct {
	Name       string
	Line       int
	Expression string
	Expected   Expectation
}

// Expectation lists the checks applied to an outcome. Unset fields are not
// checked; at least one must be set.
type Expectation struct {
	Result *int64   `yaml:"result"`
	Steps  []string `yaml:"steps"`
	Error  string   `yaml:"error"`
}

type frontMatter struct {
	Locale string `yaml:"locale"`
}

// Parse reads a case document.
func Parse(reader io.Reader) (*Document, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}

	meta, body, offset, err := parseFrontMatter(content)
	if err != nil {
		return nil, err
	}

	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	root := md.Parser().Parse(text.NewReader(body))

	doc := &Document{Locale: meta.Locale}

	var current *Case

	finish := func() error {
		if current == nil {
			return nil
		}

		if err := validateCase(current); err != nil {
			return err
		}

		doc.Cases = append(doc.Cases, *current)

		return nil
	}

	for node := root.FirstChild(); node != nil; node = node.NextSibling() {
		switch n := node.(type) {
		case *ast.Heading:
			heading := headingText(n, body)

			switch {
			case n.Level == 1 && doc.Title == "":
				doc.Title = heading
			case n.Level == 2:
				if err := finish(); err != nil {
					return nil, err
				}

				current = &Case{Name: heading, Line: lineOf(n, body) + offset}
			}
		case *ast.FencedCodeBlock:
			if current == nil {
				continue
			}

			if err := applyCodeBlock(current, n, body); err != nil {
				return nil, err
			}
		}
	}

	if err := finish(); err != nil {
		return nil, err
	}

	if len(doc.Cases) == 0 {
		return nil, ErrNoCases
	}

	return doc, nil
}

func applyCodeBlock(c *Case, block *ast.FencedCodeBlock, source []byte) error {
	content := codeBlockContent(block, source)

	switch strings.ToLower(string(block.Language(source))) {
	case "expr":
		c.Expression = strings.TrimSpace(content)
	case "yaml", "yml":
		if err := yaml.UnmarshalWithOptions([]byte(content), &c.Expected, yaml.Strict()); err != nil {
			return fmt.Errorf("%w: %s (line %d): %w", ErrInvalidCase, c.Name, c.Line, err)
		}
	}

	return nil
}

func validateCase(c *Case) error {
	if c.Expression == "" {
		return fmt.Errorf("%w: %s (line %d): missing expr block", ErrInvalidCase, c.Name, c.Line)
	}

	e := c.Expected
	if e.Result == nil && len(e.Steps) == 0 && e.Error == "" {
		return fmt.Errorf("%w: %s (line %d): expectation needs result, steps or error", ErrInvalidCase, c.Name, c.Line)
	}

	if e.Error != "" && e.Result != nil {
		return fmt.Errorf("%w: %s (line %d): result and error are mutually exclusive", ErrInvalidCase, c.Name, c.Line)
	}

	return nil
}

// parseFrontMatter splits off a leading "---" YAML block and returns the
// number of lines it occupied.
func parseFrontMatter(content []byte) (frontMatter, []byte, int, error) {
	var meta frontMatter

	if !bytes.HasPrefix(content, []byte("---\n")) {
		return meta, content, 0, nil
	}

	end := bytes.Index(content[4:], []byte("\n---"))
	if end == -1 {
		return meta, nil, 0, ErrInvalidFrontMatter
	}

	end += 4

	if err := yaml.Unmarshal(content[4:end], &meta); err != nil {
		return meta, nil, 0, fmt.Errorf("%w: %w", ErrInvalidFrontMatter, err)
	}

	rest := content[end+4:]

	return meta, rest, bytes.Count(content[:end+4], []byte("\n")), nil
}

func headingText(heading *ast.Heading, source []byte) string {
	var result strings.Builder

	_ = ast.Walk(heading, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Text:
			result.Write(node.Segment.Value(source))
		case *ast.String:
			result.Write(node.Value)
		}

		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(result.String())
}

func codeBlockContent(block *ast.FencedCodeBlock, source []byte) string {
	var result strings.Builder

	lines := block.Lines()
	for i := range lines.Len() {
		line := lines.At(i)
		result.Write(line.Value(source))
	}

	return result.String()
}

// lineOf returns the 1-based line of a block node within source.
func lineOf(node ast.Node, source []byte) int {
	lines := node.Lines()
	if lines == nil || lines.Len() == 0 {
		return 0
	}

	return bytes.Count(source[:lines.At(0).Start], []byte("\n")) + 1
}
