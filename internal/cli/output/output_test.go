package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_EffectiveMode(t *testing.T) {
	tests := []struct {
		name string
		mode Mode
		want Mode
	}{
		{"explicit text", ModeText, ModeText},
		{"explicit json", ModeJSON, ModeJSON},
		{"explicit markdown", ModeMarkdown, ModeMarkdown},
		// A bytes.Buffer is not a TTY, so auto resolves to markdown.
		{"auto on non-tty", ModeAuto, ModeMarkdown},
		{"unknown falls back to auto", Mode("yaml"), ModeMarkdown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			r := NewRenderer(&out, &errOut, tt.mode)
			assert.Equal(t, tt.want, r.EffectiveMode())
		})
	}
}

func TestRenderer_JSON(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, &bytes.Buffer{}, ModeJSON)

	require.NoError(t, r.JSON(map[string]int{"families": 2}))

	var decoded map[string]int
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, 2, decoded["families"])
}

func TestRenderer_WarningGoesToStderr(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRenderer(&out, &errOut, ModeText)

	r.Warning("watch out")

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "watch out")
}

func TestFormatHeader(t *testing.T) {
	assert.Equal(t, "# Report", FormatHeader(1, "Report"))
	assert.Equal(t, "## Families", FormatHeader(2, "Families"))
	assert.Equal(t, "# clamped", FormatHeader(0, "clamped"))
}
