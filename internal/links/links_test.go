package links

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractWikiLink(t *testing.T) {
	t.Run("plain link", func(t *testing.T) {
		link, ok := ExtractWikiLink("review [[Meeting Notes]] today")
		require.True(t, ok)
		assert.Equal(t, "Meeting Notes", link.Name)
		assert.Empty(t, link.Alias)
	})

	t.Run("alias splits at the first pipe", func(t *testing.T) {
		link, ok := ExtractWikiLink("see [[Projects/Q1|the plan|v2]]")
		require.True(t, ok)
		assert.Equal(t, "Projects/Q1", link.Name)
		assert.Equal(t, "the plan|v2", link.Alias)
	})

	t.Run("only the first match is returned", func(t *testing.T) {
		link, ok := ExtractWikiLink("[[First]] and [[Second]]")
		require.True(t, ok)
		assert.Equal(t, "First", link.Name)
	})

	t.Run("blank name yields nothing", func(t *testing.T) {
		_, ok := ExtractWikiLink("broken [[   ]] link")
		assert.False(t, ok)
	})

	t.Run("no link", func(t *testing.T) {
		_, ok := ExtractWikiLink("no links here")
		assert.False(t, ok)
	})
}

func TestExtractMarkdownLinks(t *testing.T) {
	t.Run("all matches in order", func(t *testing.T) {
		got := ExtractMarkdownLinks("read [docs](https://example.org) and [issue](https://example.org/42)")
		require.Len(t, got, 2)
		assert.Equal(t, "docs", got[0].Text)
		assert.Equal(t, "https://example.org", got[0].URL)
		assert.Equal(t, "issue", got[1].Text)
	})

	t.Run("url content is not validated", func(t *testing.T) {
		got := ExtractMarkdownLinks("[weird](not a url)")
		require.Len(t, got, 1)
		assert.Equal(t, "not a url", got[0].URL)
	})

	t.Run("none", func(t *testing.T) {
		assert.Empty(t, ExtractMarkdownLinks("plain text [bracket] (paren)"))
	})
}
