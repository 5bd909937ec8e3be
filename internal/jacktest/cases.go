// Package jacktest extracts compiler test cases from Markdown documents.
//
// A case starts at a heading "Test: <name>" and holds one "jack" fence with
// the source of a class followed by one or more assertion fences:
//
//	vm      the exact VM listing the class compiles to
//	error   text the compile error must contain
//	tokens  the exact token XML listing of the source
package jacktest

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// InputFence is the fence language holding the source under test
const InputFence = "jack"

// AssertionType is the fence language of an assertion
type AssertionType string

const (
	AssertionVM     AssertionType = "vm"
	AssertionError  AssertionType = "error"
	AssertionTokens AssertionType = "tokens"
)

// Assertion is a single expectation about the compiled source
type Assertion struct {
	Type    AssertionType
	Content string
}

// Case is a test case extracted from Markdown
type Case struct {
	Name       string
	Source     string
	Line       int
	Assertions []Assertion
}

// LoadFile reads a Markdown file and extracts its cases
func LoadFile(path string) ([]Case, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cases, err := ExtractCases(string(content))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cases, nil
}

// ExtractCases parses a Markdown document and extracts all of its cases
func ExtractCases(markdown string) ([]Case, error) {
	source := []byte(markdown)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var cases []Case
	var current *Case

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			heading := extractText(n, source)
			if !strings.HasPrefix(heading, "Test: ") {
				return ast.WalkContinue, nil
			}
			if current != nil {
				if err := validate(current); err != nil {
					return ast.WalkStop, err
				}
				cases = append(cases, *current)
			}
			current = &Case{Name: strings.TrimPrefix(heading, "Test: ")}

		case *ast.FencedCodeBlock:
			language := string(n.Language(source))
			content := extractCodeBlock(n, source)
			line := lineNumber(n, source)

			if current == nil {
				if language != "" {
					return ast.WalkStop, fmt.Errorf("line %d: %s fence found outside of test case", line, language)
				}
				return ast.WalkContinue, nil
			}

			switch AssertionType(language) {
			case InputFence:
				if current.Source != "" {
					return ast.WalkStop, fmt.Errorf("line %d: multiple %s fences in test '%s'", line, InputFence, current.Name)
				}
				current.Source = content
				current.Line = line
			case AssertionVM, AssertionError, AssertionTokens:
				current.Assertions = append(current.Assertions, Assertion{
					Type:    AssertionType(language),
					Content: strings.TrimRight(content, "\n"),
				})
			case "":
			default:
				return ast.WalkStop, fmt.Errorf("line %d: unknown fence language '%s' in test '%s'", line, language, current.Name)
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	if current != nil {
		if err := validate(current); err != nil {
			return nil, err
		}
		cases = append(cases, *current)
	}
	return cases, nil
}

func validate(c *Case) error {
	if c.Source == "" {
		return fmt.Errorf("test '%s' has no %s fence", c.Name, InputFence)
	}
	if len(c.Assertions) == 0 {
		return fmt.Errorf("test '%s' has no assertion fences", c.Name)
	}
	return nil
}

func extractText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := n.(*ast.Text); ok && entering {
			buf.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func extractCodeBlock(block *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(source))
	}
	return buf.String()
}

// lineNumber returns the line the block's content starts on
func lineNumber(node ast.Node, source []byte) int {
	if node.Lines().Len() == 0 {
		return 1
	}
	start := node.Lines().At(0).Start
	return bytes.Count(source[:start], []byte("\n")) + 1
}
