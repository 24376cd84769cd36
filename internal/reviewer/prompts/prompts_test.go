package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxbolgarin/prpatrol/internal/model"
)

func TestBuildReviewPrompt(t *testing.T) {
	b := NewBuilder(model.StyleDetailed)

	prompt := b.BuildReviewPrompt(&model.FileChange{
		Path:    "internal/auth/token.py",
		Content: "def issue_token():\n    pass\n",
		Kind:    model.ChangeKindAdd,
	})

	assert.Contains(t, prompt.UserPrompt, "internal/auth/token.py")
	assert.Contains(t, prompt.UserPrompt, "python")
	assert.Contains(t, prompt.UserPrompt, "def issue_token():")
	assert.Contains(t, prompt.SystemPrompt, outputGrammar)
}

func TestBuildReviewPrompt_PreviousVersionOnlyForEdits(t *testing.T) {
	b := NewBuilder(model.StyleDetailed)

	edited := b.BuildReviewPrompt(&model.FileChange{
		Path:       "main.go",
		Content:    "package main\n",
		OldContent: "package old\n",
		Kind:       model.ChangeKindEdit,
	})
	assert.Contains(t, edited.UserPrompt, "package old")

	added := b.BuildReviewPrompt(&model.FileChange{
		Path:       "main.go",
		Content:    "package main\n",
		OldContent: "package old\n",
		Kind:       model.ChangeKindAdd,
	})
	assert.NotContains(t, added.UserPrompt, "package old")

	editedWithoutOld := b.BuildReviewPrompt(&model.FileChange{
		Path:    "main.go",
		Content: "package main\n",
		Kind:    model.ChangeKindEdit,
	})
	assert.NotContains(t, editedWithoutOld.UserPrompt, "Previous version")
}

func TestSystemPromptPerStyle(t *testing.T) {
	styles := []model.ReviewStyle{
		model.StyleDetailed,
		model.StyleSecurityFocused,
		model.StyleQuick,
	}

	seen := make(map[string]bool)
	for _, style := range styles {
		prompt := NewBuilder(style).BuildReviewPrompt(&model.FileChange{
			Path:    "main.go",
			Content: "package main\n",
			Kind:    model.ChangeKindAdd,
		})

		require.NotEmpty(t, prompt.SystemPrompt)
		assert.Contains(t, prompt.SystemPrompt, outputGrammar, "style %s must carry the output grammar", style)
		assert.False(t, seen[prompt.SystemPrompt], "style %s must have its own template", style)
		seen[prompt.SystemPrompt] = true
	}
}

func TestSecurityStyleMentionsSecurity(t *testing.T) {
	prompt := NewBuilder(model.StyleSecurityFocused).BuildReviewPrompt(&model.FileChange{
		Path:    "main.go",
		Content: "package main\n",
		Kind:    model.ChangeKindAdd,
	})
	assert.Contains(t, prompt.SystemPrompt, "security")
}

func TestLanguageLabel(t *testing.T) {
	cases := map[string]string{
		"service.py":        "python",
		"app.js":            "javascript",
		"component.ts":      "typescript",
		"Main.java":         "java",
		"server.go":         "go",
		"lib.rs":            "rust",
		"engine.cpp":        "cpp",
		"kernel.c":          "c",
		"Program.cs":        "csharp",
		"worker.rb":         "ruby",
		"index.php":         "php",
		"README.md":         "text",
		"Dockerfile":        "text",
		"nested/path/x.py":  "python",
		"no_extension_file": "text",
	}

	for path, want := range cases {
		assert.Equal(t, want, LanguageLabel(path), "path %s", path)
	}
}
