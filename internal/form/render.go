package form

import (
	"context"
	"strings"

	"github.com/a-h/templ"
)

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.906 generate

// Kind selects the styling of a rendered outcome.
type Kind int

const (
	KindSuccess Kind = iota
	KindError
)

// RenderSuccess returns the affirmative fragment for message.
func RenderSuccess(message string) string {
	return renderString(Alert(KindSuccess, message))
}

// RenderError returns the negative fragment for text.
func RenderError(text string) string {
	return renderString(Alert(KindError, text))
}

func renderString(c templ.Component) string {
	var sb strings.Builder
	// strings.Builder never fails a write
	_ = c.Render(context.Background(), &sb)
	return sb.String()
}
