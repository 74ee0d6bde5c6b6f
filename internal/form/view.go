package form

import (
	"errors"
	"sync"
)

var ErrMissingElement = errors.New("form element missing")

// Button is the submit control.
type Button interface {
	SetDisabled(disabled bool)
	SetLabel(label string)
}

// Output is the area the outcome fragment is written into.
type Output interface {
	SetHTML(html string)
}

// Fields gives access to the form inputs by element id.
type Fields interface {
	Value(id string) string
	Reset()
}

// View bundles the page references a Handler drives.
type View struct {
	Button Button
	Output Output
	Fields Fields
}

func (v View) validate() error {
	switch {
	case v.Button == nil:
		return errors.Join(ErrMissingElement, errors.New(SubmitButtonID))
	case v.Output == nil:
		return errors.Join(ErrMissingElement, errors.New(ResponseAreaID))
	case v.Fields == nil:
		return errors.Join(ErrMissingElement, errors.New(FormID))
	}
	return nil
}

// ButtonState is one observed state of the submit control.
type ButtonState struct {
	Disabled bool
	Label    string
}

// MemoryView is an in-process View. It keeps every button state it went
// through so callers can inspect the sequence after a submission.
type MemoryView struct {
	mu       sync.Mutex
	values   map[string]string
	disabled bool
	label    string
	html     string
	history  []ButtonState
}

// NewMemoryView returns a view with the given input values and the button in
// its idle state.
func NewMemoryView(values map[string]string) *MemoryView {
	v := &MemoryView{
		values: make(map[string]string, len(FieldIDs)),
		label:  SubmitLabel,
	}
	for _, id := range FieldIDs {
		v.values[id] = values[id]
	}
	return v
}

// View returns the handler-facing references.
func (v *MemoryView) View() View {
	return View{Button: v, Output: v, Fields: v}
}

func (v *MemoryView) SetDisabled(disabled bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.disabled = disabled
	v.history = append(v.history, ButtonState{Disabled: disabled, Label: v.label})
}

func (v *MemoryView) SetLabel(label string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.label = label
	v.history = append(v.history, ButtonState{Disabled: v.disabled, Label: label})
}

func (v *MemoryView) SetHTML(html string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.html = html
}

func (v *MemoryView) Value(id string) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.values[id]
}

func (v *MemoryView) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	for id := range v.values {
		v.values[id] = ""
	}
}

// SetValue changes one input, as a user typing would.
func (v *MemoryView) SetValue(id, value string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.values[id] = value
}

func (v *MemoryView) Disabled() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.disabled
}

func (v *MemoryView) Label() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.label
}

func (v *MemoryView) HTML() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.html
}

// History returns a copy of the recorded button states.
func (v *MemoryView) History() []ButtonState {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]ButtonState, len(v.history))
	copy(out, v.history)
	return out
}

// Values returns a copy of the current input values.
func (v *MemoryView) Values() map[string]string {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make(map[string]string, len(v.values))
	for id, value := range v.values {
		out[id] = value
	}
	return out
}
