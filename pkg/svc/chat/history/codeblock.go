package history

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// CodeBlock is a fenced or indented code block found in a response.
type CodeBlock struct {
	Language string
	Value    string
}

// CodeBlocks extracts the block-level code snippets from a markdown response, in order.
// Inline code spans are not included.
func CodeBlocks(markdown string) []CodeBlock {
	source := []byte(markdown)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var blocks []CodeBlock

	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch block := node.(type) {
		case *ast.FencedCodeBlock:
			blocks = append(blocks, CodeBlock{
				Language: string(block.Language(source)),
				Value:    blockText(block.Lines(), source),
			})

			return ast.WalkSkipChildren, nil
		case *ast.CodeBlock:
			blocks = append(blocks, CodeBlock{Value: blockText(block.Lines(), source)})

			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})

	return blocks
}

func blockText(lines *text.Segments, source []byte) string {
	var builder strings.Builder

	for i := range lines.Len() {
		segment := lines.At(i)
		builder.Write(segment.Value(source))
	}

	return strings.TrimRight(builder.String(), "\n")
}
