package services

import (
	"testing"

	"lawyer_tools/services/i18n"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindTool(t *testing.T) {
	tool, ok := FindTool("datedelta")
	require.True(t, ok)
	assert.Equal(t, ToolKindNative, tool.Kind)
	assert.Equal(t, "/datedelta", tool.Path())
	assert.Equal(t, "DateDelta", tool.Title())

	tool, ok = FindTool("legaldrop")
	require.True(t, ok)
	assert.Equal(t, ToolKindIframe, tool.Kind)
	assert.Equal(t, 600, tool.IframeHeight)

	_, ok = FindTool("unknown")
	assert.False(t, ok)
}

func TestToolCatalog(t *testing.T) {
	seen := make(map[string]bool)
	for _, tool := range Tools {
		assert.False(t, seen[tool.Slug], "duplicate slug %s", tool.Slug)
		seen[tool.Slug] = true

		if tool.Kind == ToolKindIframe {
			assert.NotEmpty(t, tool.IframeSrc, tool.Slug)
			assert.Positive(t, tool.IframeHeight, tool.Slug)
		} else {
			assert.Empty(t, tool.IframeSrc, tool.Slug)
		}
	}
	assert.Len(t, Tools, 11)
}

func TestToolTextsAreTranslated(t *testing.T) {
	require.NoError(t, i18n.Load())

	for _, tool := range Tools {
		for _, lang := range []string{"de", "en"} {
			assert.NotEqual(t, tool.ShortTextKey(), i18n.Translate(lang, tool.ShortTextKey()), "%s/%s", lang, tool.Slug)
		}
	}
}

func TestFrameSources(t *testing.T) {
	assert.Equal(t, []string{
		"https://legaldrop.lawyer.tools",
		"https://va.lawyer.tools",
		"https://gr.lawyer.tools",
	}, FrameSources())
}
