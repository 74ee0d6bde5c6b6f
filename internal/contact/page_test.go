package contact_test

import (
	"context"
	"strings"
	"testing"

	"contact-service/internal/contact"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormPage(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, contact.FormPage(`/prod/contact?x="y"`).Render(context.Background(), &sb))

	html := sb.String()
	assert.Contains(t, html, `action="/prod/contact?x=&#34;y&#34;"`)
	for _, id := range []string{"contactForm", "name", "email", "phone", "subject", "message", "submitBtn", "responseMessage"} {
		assert.Contains(t, html, `id="`+id+`"`)
	}
}

func TestThankYouPage(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, contact.ThankYouPage("<id>").Render(context.Background(), &sb))

	assert.Contains(t, sb.String(), "&lt;id&gt;")
	assert.NotContains(t, sb.String(), "<id>")
}

func TestPages_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var sb strings.Builder
	assert.ErrorIs(t, contact.FormPage("/prod/contact").Render(ctx, &sb), context.Canceled)
	assert.ErrorIs(t, contact.ThankYouPage("id").Render(ctx, &sb), context.Canceled)
	assert.Empty(t, sb.String())
}
