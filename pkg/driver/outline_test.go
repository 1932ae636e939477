package driver

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutline(t *testing.T) {
	rawHTML := `<!DOCTYPE html>
<html>
<head>
	<title>Acme Store</title>
	<meta name="description" content="Buy things">
	<style>body { color: red; }</style>
	<script>console.log("tracking");</script>
</head>
<body>
	<header id="top" class="site-header">
		<nav role="navigation">
			<a href="/home" data-testid="nav-home">Home</a>
			<a href="/login">Login</a>
		</nav>
	</header>
	<main>
		<h1>Welcome</h1>
		<form action="/search" method="get">
			<input type="text" name="q" placeholder="Search">
			<button type="submit" onclick="track()">Go</button>
		</form>
	</main>
</body>
</html>`

	outline, err := Outline(rawHTML, 0)
	require.NoError(t, err)

	assert.Equal(t, "Acme Store", outline.Title)
	assert.Equal(t, "Buy things", outline.Description)
	assert.False(t, outline.Truncated)

	// Noise removed
	assert.NotContains(t, outline.HTML, "console.log")
	assert.NotContains(t, outline.HTML, "color: red")

	// Structure and targeting attributes kept
	assert.Contains(t, outline.HTML, `id="top"`)
	assert.Contains(t, outline.HTML, `class="site-header"`)
	assert.Contains(t, outline.HTML, `data-testid="nav-home"`)
	assert.Contains(t, outline.HTML, `href="/login"`)
	assert.Contains(t, outline.HTML, `name="q"`)
	assert.Contains(t, outline.HTML, `placeholder="Search"`)

	// Event handlers are not targeting attributes
	assert.NotContains(t, outline.HTML, "onclick")
}

func TestOutline_Truncation(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body><p>")
	for i := 0; i < 500; i++ {
		b.WriteString("lorem ipsum ")
	}
	b.WriteString("</p></body></html>")

	outline, err := Outline(b.String(), 200)
	require.NoError(t, err)

	assert.True(t, outline.Truncated)
	assert.Contains(t, outline.HTML, "...")
}

func TestOutline_EmptyDocument(t *testing.T) {
	outline, err := Outline("", 0)
	require.NoError(t, err)

	assert.Empty(t, outline.Title)
	assert.Empty(t, outline.Description)
	assert.False(t, outline.Truncated)
}

func TestSkippedTag(t *testing.T) {
	for _, tag := range []string{"script", "style", "noscript", "iframe", "svg"} {
		assert.True(t, skippedTag(tag), tag)
	}
	for _, tag := range []string{"div", "a", "form", "input"} {
		assert.False(t, skippedTag(tag), tag)
	}
}

func TestKeepAttribute(t *testing.T) {
	tests := []struct {
		tag  string
		attr string
		want bool
	}{
		{"div", "id", true},
		{"div", "class", true},
		{"span", "data-testid", true},
		{"a", "href", true},
		{"a", "target", false},
		{"input", "name", true},
		{"input", "placeholder", true},
		{"button", "type", true},
		{"button", "onclick", false},
		{"img", "src", true},
		{"form", "action", true},
		{"div", "style", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, keepAttribute(tt.tag, tt.attr), "%s[%s]", tt.tag, tt.attr)
	}
}
