//go:build js && wasm

package form

import (
	"context"
	"errors"
	"log/slog"
	"syscall/js"
)

type domButton struct {
	el js.Value
}

func (b domButton) SetDisabled(disabled bool) {
	b.el.Set("disabled", disabled)
}

func (b domButton) SetLabel(label string) {
	b.el.Set("textContent", label)
}

type domOutput struct {
	el js.Value
}

func (o domOutput) SetHTML(html string) {
	o.el.Set("innerHTML", html)
}

type domFields struct {
	form   js.Value
	inputs map[string]js.Value
}

func (f domFields) Value(id string) string {
	return f.inputs[id].Get("value").String()
}

func (f domFields) Reset() {
	f.form.Call("reset")
}

// DOMView looks up the page elements in doc. Every element must exist.
func DOMView(doc js.Value) (View, js.Value, error) {
	lookup := func(id string) (js.Value, error) {
		el := doc.Call("getElementById", id)
		if el.IsNull() || el.IsUndefined() {
			return js.Value{}, errors.Join(ErrMissingElement, errors.New(id))
		}
		return el, nil
	}

	formEl, err := lookup(FormID)
	if err != nil {
		return View{}, js.Value{}, err
	}
	button, err := lookup(SubmitButtonID)
	if err != nil {
		return View{}, js.Value{}, err
	}
	output, err := lookup(ResponseAreaID)
	if err != nil {
		return View{}, js.Value{}, err
	}

	inputs := make(map[string]js.Value, len(FieldIDs))
	for _, id := range FieldIDs {
		el, err := lookup(id)
		if err != nil {
			return View{}, js.Value{}, err
		}
		inputs[id] = el
	}

	view := View{
		Button: domButton{el: button},
		Output: domOutput{el: output},
		Fields: domFields{form: formEl, inputs: inputs},
	}
	return view, formEl, nil
}

// BindDOM wires a Handler to the submit event of the contact form in doc.
// Default navigation is always cancelled; the submission itself runs on its
// own goroutine so the event loop is never blocked. The returned func removes
// the listener.
func BindDOM(ctx context.Context, doc js.Value, sender Sender, logger *slog.Logger) (func(), error) {
	view, formEl, err := DOMView(doc)
	if err != nil {
		return nil, err
	}

	handler, err := NewHandler(view, sender, logger)
	if err != nil {
		return nil, err
	}

	listener := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) > 0 {
			args[0].Call("preventDefault")
		}
		go handler.Submit(ctx)
		return nil
	})
	formEl.Call("addEventListener", "submit", listener)

	return func() {
		formEl.Call("removeEventListener", "submit", listener)
		listener.Release()
	}, nil
}
