// Package form implements the contact form submission handler: it reads the
// four inputs, posts them to the contact endpoint once, renders the outcome
// into the page and always hands the submit control back to the user.
//
// The handler works against a View rather than a concrete page, so the same
// code drives the browser DOM (see BindDOM, js/wasm only), the terminal client
// and tests.
package form

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
)

var ErrNilSender = errors.New("form sender is nil")

// OutcomeKind reports which branch a submission took.
type OutcomeKind int

const (
	// OutcomeSuccess: the endpoint accepted the submission.
	OutcomeSuccess OutcomeKind = iota
	// OutcomeRejected: the endpoint answered with success false.
	OutcomeRejected
	// OutcomeNetworkError: the request failed or the reply could not be parsed.
	OutcomeNetworkError
	// OutcomeBusy: another submission was still in flight; nothing was done.
	OutcomeBusy
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeRejected:
		return "rejected"
	case OutcomeNetworkError:
		return "network_error"
	case OutcomeBusy:
		return "busy"
	default:
		return "unknown"
	}
}

// Outcome is what Submit rendered.
type Outcome struct {
	Kind         OutcomeKind
	Text         string // shown to the user, before HTML rendering
	SubmissionID string
}

// OK reports whether the submission was accepted.
func (o Outcome) OK() bool {
	return o.Kind == OutcomeSuccess
}

type Handler struct {
	view     View
	sender   Sender
	logger   *slog.Logger
	inFlight atomic.Bool
}

func NewHandler(view View, sender Sender, logger *slog.Logger) (*Handler, error) {
	if err := view.validate(); err != nil {
		return nil, err
	}
	if sender == nil {
		return nil, ErrNilSender
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		view:   view,
		sender: sender,
		logger: logger,
	}, nil
}

// Submit runs one submission. The button is disabled for the whole exchange
// and restored on every exit path, panics included.
func (h *Handler) Submit(ctx context.Context) Outcome {
	if !h.inFlight.CompareAndSwap(false, true) {
		h.logger.DebugContext(ctx, "submission already in flight")
		return Outcome{Kind: OutcomeBusy}
	}
	defer h.inFlight.Store(false)

	h.view.Button.SetDisabled(true)
	h.view.Button.SetLabel(SendingLabel)
	defer func() {
		h.view.Button.SetDisabled(false)
		h.view.Button.SetLabel(SubmitLabel)
	}()
	h.view.Output.SetHTML("")

	payload := PayloadFrom(h.view.Fields)

	result, err := h.sender.Send(ctx, payload)
	if err != nil {
		h.logger.WarnContext(ctx, "contact submission failed", "error", err)
		h.view.Output.SetHTML(RenderError(NetworkErrorMessage))
		return Outcome{Kind: OutcomeNetworkError, Text: NetworkErrorMessage}
	}

	if result.Success {
		h.logger.DebugContext(ctx, "contact submission accepted", "submission_id", result.SubmissionID)
		h.view.Output.SetHTML(RenderSuccess(result.Message))
		h.view.Fields.Reset()
		return Outcome{Kind: OutcomeSuccess, Text: result.Message, SubmissionID: result.SubmissionID}
	}

	text := ErrorPrefix + result.Message
	h.logger.DebugContext(ctx, "contact submission rejected", "message", result.Message)
	h.view.Output.SetHTML(RenderError(text))
	return Outcome{Kind: OutcomeRejected, Text: text}
}
