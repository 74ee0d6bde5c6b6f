package form_test

import (
	"bytes"
	"context"
	"testing"

	"contact-service/internal/form"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	t.Run("RenderSuccess_LiteralStyle", func(t *testing.T) {
		assert.Equal(t,
			`<div style="color: green; padding: 10px; border: 1px solid green; background: #d4edda; margin-top: 10px;">Message sent successfully</div>`,
			form.RenderSuccess("Message sent successfully"))
	})

	t.Run("RenderError_LiteralStyle", func(t *testing.T) {
		assert.Equal(t,
			`<div style="color: red; padding: 10px; border: 1px solid red; background: #f8d7da; margin-top: 10px;">Error: x</div>`,
			form.RenderError("Error: x"))
	})

	t.Run("Render_EscapesMarkup", func(t *testing.T) {
		html := form.RenderError(`Error: <script>alert("x")</script>`)
		assert.NotContains(t, html, "<script>")
		assert.Contains(t, html, "&lt;script&gt;")
	})

	t.Run("Alert_RendersToWriter", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, form.Alert(form.KindSuccess, "ok").Render(context.Background(), &buf))
		assert.Equal(t, form.RenderSuccess("ok"), buf.String())
	})
}
