package prompt

import (
	"strings"
)

const (
	DocumentSeparator = "\n\n---\n\n"
	TruncatedMarker   = "[... truncated ...]"
)

// Source is one document as seen by the model.
type Source struct {
	Name    string
	Content string
}

// Builder renders the grounding prompt from every held document.
// Output is byte-identical for equal inputs.
type Builder struct {
	strategy ContextStrategy
}

func NewBuilder(strategy ContextStrategy) *Builder {
	if strategy == nil {
		strategy = VerbatimStrategy{}
	}
	return &Builder{strategy: strategy}
}

func (b *Builder) BuildPrompt(sources []Source, question string) string {
	var prompt strings.Builder

	b.writeInstructions(&prompt)
	b.writeDocuments(&prompt, b.strategy.Apply(sources))
	b.writeQuestion(&prompt, question)

	return prompt.String()
}

func (b *Builder) writeInstructions(prompt *strings.Builder) {
	prompt.WriteString("You are a helpful assistant that answers questions about the user's documents.\n")
	prompt.WriteString("Answer the question using ONLY the content of the documents below.\n")
	prompt.WriteString("If the answer is not contained in the documents, say plainly that the documents do not contain that information.\n")
	prompt.WriteString("Do not use outside knowledge.\n\n")
}

func (b *Builder) writeDocuments(prompt *strings.Builder, sources []Source) {
	prompt.WriteString("DOCUMENTS:\n\n")
	for i, src := range sources {
		if i > 0 {
			prompt.WriteString(DocumentSeparator)
		}
		prompt.WriteString("Document: ")
		prompt.WriteString(src.Name)
		prompt.WriteString("\n")
		prompt.WriteString(src.Content)
	}
	prompt.WriteString("\n\n")
}

func (b *Builder) writeQuestion(prompt *strings.Builder, question string) {
	prompt.WriteString("QUESTION: ")
	prompt.WriteString(question)
	prompt.WriteString("\n\nANSWER:")
}
