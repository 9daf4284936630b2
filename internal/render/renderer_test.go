package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	r := New()

	markup, err := r.Text("CustomFields.phone", "Phone number", Options{
		Value:       "+1 555 0100",
		Placeholder: "e.g. +1 555 0100",
	})
	require.NoError(t, err)

	assert.Contains(t, markup, `name="CustomFields.phone"`)
	assert.Contains(t, markup, `value="+1 555 0100"`)
	assert.Contains(t, markup, `placeholder="e.g. +1 555 0100"`)
	assert.Contains(t, markup, ">Phone number</label>")
	assert.NotContains(t, markup, "disabled")
}

func TestTextDisabled(t *testing.T) {
	r := New()

	markup, err := r.Text("CustomFields.vat", "VAT ID", Options{Disabled: true})
	require.NoError(t, err)

	assert.Contains(t, markup, " disabled")
}

func TestTextEscapesValue(t *testing.T) {
	r := New()

	markup, err := r.Text("CustomFields.note", "Note", Options{Value: `"><script>`})
	require.NoError(t, err)

	assert.NotContains(t, markup, "<script>")
}

func TestSelect(t *testing.T) {
	r := New()

	markup, err := r.Select("CustomFields.plan", "Plan", Options{
		Value:   "pro",
		Choices: []string{"free", "pro", "enterprise"},
	})
	require.NoError(t, err)

	assert.Contains(t, markup, `<option value="free">`)
	assert.Contains(t, markup, `<option value="pro" selected>`)
	assert.Contains(t, markup, `<option value="enterprise">`)
}

func TestTextarea(t *testing.T) {
	r := New()

	markup, err := r.Textarea("CustomFields.notes", "Notes", Options{Value: "line one"})
	require.NoError(t, err)

	assert.Contains(t, markup, "<textarea")
	assert.Contains(t, markup, ">line one</textarea>")
}

func TestCheckbox(t *testing.T) {
	r := New()

	t.Run("checked", func(t *testing.T) {
		markup, err := r.Checkbox("CustomFields.newsletter", "Newsletter", Options{Checked: true})
		require.NoError(t, err)
		assert.Contains(t, markup, `value="1"`)
		assert.Contains(t, markup, " checked")
	})

	t.Run("unchecked", func(t *testing.T) {
		markup, err := r.Checkbox("CustomFields.newsletter", "Newsletter", Options{})
		require.NoError(t, err)
		assert.NotContains(t, markup, " checked")
	})
}

func TestWysiwygSanitizesStoredHTML(t *testing.T) {
	r := New()

	markup, err := r.Wysiwyg("CustomFields.bio", "Bio", Options{
		Value: `<p>hello</p><script>alert(1)</script>`,
	})
	require.NoError(t, err)

	assert.Contains(t, markup, "<p>hello</p>")
	assert.NotContains(t, markup, "<script>")
}

func TestHelpText(t *testing.T) {
	r := New()

	markup, err := r.HelpText("Include the country code")
	require.NoError(t, err)

	assert.Contains(t, markup, "Include the country code")
	assert.Contains(t, markup, "form-text")
}
