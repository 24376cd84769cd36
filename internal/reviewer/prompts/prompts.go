// Package prompts builds the instruction and user prompts sent to the model.
package prompts

import (
	"fmt"
	"strings"

	"github.com/maxbolgarin/prpatrol/internal/model"
)

// Builder builds review prompts for a fixed review style.
type Builder struct {
	style model.ReviewStyle
}

// NewBuilder creates a prompt builder for the given style.
func NewBuilder(style model.ReviewStyle) *Builder {
	return &Builder{style: style}
}

// BuildReviewPrompt builds the full prompt for reviewing one changed file.
// It is a pure function of the file change and the static templates.
func (b *Builder) BuildReviewPrompt(file *model.FileChange) model.Prompt {
	language := LanguageLabel(file.Path)

	var user strings.Builder
	user.WriteString(fmt.Sprintf(reviewUserPromptTemplate,
		file.Path, file.Kind, language, language, file.Content))

	if file.Kind == model.ChangeKindEdit && file.OldContent != "" {
		user.WriteString(fmt.Sprintf(previousVersionTemplate, language, file.OldContent))
	}

	user.WriteString(reviewUserPromptFooter)

	return model.Prompt{
		SystemPrompt: b.systemPrompt(),
		UserPrompt:   user.String(),
	}
}

func (b *Builder) systemPrompt() string {
	switch b.style {
	case model.StyleSecurityFocused:
		return securitySystemPromptTemplate
	case model.StyleQuick:
		return quickSystemPromptTemplate
	default:
		return detailedSystemPromptTemplate
	}
}
