package output

import (
	"bytes"
	"encoding/json"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func newTestRenderer(mode Mode, isTTY bool) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	return NewRendererWithTTY(out, errOut, isTTY, mode), out, errOut
}

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		mode  Mode
		isTTY bool
		want  Mode
	}{
		{ModeAuto, true, ModeText},
		{ModeAuto, false, ModeMarkdown},
		{"", true, ModeText},
		{"", false, ModeMarkdown},
		{ModeText, false, ModeText},
		{ModeMarkdown, true, ModeMarkdown},
		{ModeJSON, true, ModeJSON},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			r, _, _ := newTestRenderer(tt.mode, tt.isTTY)
			assert.Equal(t, tt.want, r.EffectiveMode())
		})
	}
}

func TestNewRenderer_BufferIsNotTTY(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{}, &bytes.Buffer{}, ModeAuto)
	assert.False(t, r.IsTTY())
	assert.Equal(t, ModeMarkdown, r.EffectiveMode())
}

func TestRenderer_Markdown(t *testing.T) {
	r, out, _ := newTestRenderer(ModeMarkdown, false)

	r.Header(1, "Tokens")
	r.Header(2, "Base")
	r.StatusLine("dist/css/tokens.css", "success", "css")
	r.StatusLine("skipped.js", "skipped", "")
	r.Success("Build completed successfully")

	assert.Equal(t, "# Tokens\n## Base\n- dist/css/tokens.css (success): css\n- skipped.js (skipped)\n**Build completed successfully**\n", out.String())
}

func TestRenderer_TextWithoutTTYHasNoANSI(t *testing.T) {
	r, out, errOut := newTestRenderer(ModeText, false)

	r.Header(1, "Tokens")
	r.StatusLine("tokens.css", "success", "2 files")
	r.StatusLine("tokens.kt", "failed", "")
	r.Success("done")
	r.Warning("careful")
	r.Error("broken")

	assert.False(t, ansiPattern.MatchString(out.String()+errOut.String()))
	assert.Contains(t, out.String(), "Tokens\n")
	assert.Contains(t, out.String(), "✓ tokens.css 2 files\n")
	assert.Contains(t, out.String(), "✗ tokens.kt\n")
	assert.Contains(t, out.String(), "✓ done\n")
	assert.Equal(t, "warning: careful\nerror: broken\n", errOut.String())
}

func TestRenderer_JSON(t *testing.T) {
	r, out, _ := newTestRenderer(ModeJSON, false)
	require.NoError(t, r.JSON(map[string]any{"value": "<b>"}))

	assert.Contains(t, out.String(), `"value": "<b>"`)
	var got map[string]string
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "<b>", got["value"])
}

func TestRenderer_Table(t *testing.T) {
	header := []string{"Path", "Value"}
	rows := [][]string{{"color.bg", "#ffffff"}}

	t.Run("markdown", func(t *testing.T) {
		r, out, _ := newTestRenderer(ModeMarkdown, false)
		r.Table(header, rows)
		assert.Contains(t, out.String(), "| color.bg | #ffffff |")
	})

	t.Run("text", func(t *testing.T) {
		r, out, _ := newTestRenderer(ModeText, false)
		r.Table(header, rows)
		assert.Contains(t, out.String(), "color.bg")
		assert.Contains(t, out.String(), "┌")
	})
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "# Title", FormatHeader(0, "Title"))
	assert.Equal(t, "### Deep", FormatHeader(3, "Deep"))
	assert.Equal(t, "- **Theme:** light", FormatKeyValue("Theme", "light"))
	assert.Equal(t, "Light Theme", Title("light theme"))
}
