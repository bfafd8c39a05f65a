// Package formview implements the add/edit screen pattern: a draft of
// string field values, per-field touched flags, synchronously derived
// validation errors, and a submit step that maps the draft into the
// resource payload shape.
package formview

import (
	"context"
	"errors"
	"sync"

	"github.com/eliteresort/resortadmin/internal/apiclient"
)

// ErrInvalid is returned by Submit when validation fails; the per-field
// messages are on VisibleErrors.
var ErrInvalid = errors.New("form has validation errors")

// ErrSubmitting is returned when a submit is already in flight.
var ErrSubmitting = errors.New("form is already submitting")

// Mode distinguishes create from edit forms.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// Rule validates one field value, returning a message or "" when valid.
type Rule func(value string) string

// FieldSpec declares one form field: its validation rules and how its
// value maps into the resource payload.
type FieldSpec struct {
	Name  string
	Rules []Rule

	// PayloadKey is the field's name in the outgoing payload; empty
	// keeps the field local to the form.
	PayloadKey string

	// Map coerces the draft string into the payload value; nil passes
	// the string through unchanged.
	Map func(value string) interface{}

	// OmitEmpty drops the field from the payload entirely when the
	// draft value is empty, instead of sending a null or empty value.
	OmitEmpty bool
}

// SubmitFunc performs the create or update call with the mapped payload.
type SubmitFunc func(ctx context.Context, payload map[string]interface{}) error

// Form holds one screen's draft state.
type Form struct {
	mu sync.Mutex

	mode    Mode
	specs   []FieldSpec
	values  map[string]string
	touched map[string]bool

	submitting bool
	banner     string

	submitErrorMessage string
}

// New builds a form with an empty draft.
func New(mode Mode, submitErrorMessage string, specs ...FieldSpec) *Form {
	values := make(map[string]string, len(specs))
	for _, spec := range specs {
		values[spec.Name] = ""
	}
	if submitErrorMessage == "" {
		submitErrorMessage = "failed to save"
	}
	return &Form{
		mode:               mode,
		specs:              specs,
		values:             values,
		touched:            map[string]bool{},
		submitErrorMessage: submitErrorMessage,
	}
}

// Mode returns the form mode.
func (f *Form) Mode() Mode {
	return f.mode
}

// Set updates one field value and clears the submit banner.
func (f *Form) Set(name, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.values[name]; !ok {
		return
	}
	f.values[name] = value
	f.banner = ""
}

// SetAll populates multiple fields at once, used when an edit form loads
// its record. Unknown names are ignored.
func (f *Form) SetAll(values map[string]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for name, value := range values {
		if _, ok := f.values[name]; ok {
			f.values[name] = value
		}
	}
	f.banner = ""
}

// Value returns one field's draft value.
func (f *Form) Value(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[name]
}

// Touch marks a field touched, revealing its validation message.
func (f *Form) Touch(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touched[name] = true
}

// Errors re-derives every field's first failing rule.
func (f *Form) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errorsLocked()
}

func (f *Form) errorsLocked() map[string]string {
	out := map[string]string{}
	for _, spec := range f.specs {
		value := f.values[spec.Name]
		for _, rule := range spec.Rules {
			if msg := rule(value); msg != "" {
				out[spec.Name] = msg
				break
			}
		}
	}
	return out
}

// VisibleErrors returns messages only for touched fields.
func (f *Form) VisibleErrors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[string]string{}
	for name, msg := range f.errorsLocked() {
		if f.touched[name] {
			out[name] = msg
		}
	}
	return out
}

// Valid reports whether no rule fails.
func (f *Form) Valid() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.errorsLocked()) == 0
}

// Banner returns the submit error message, if any.
func (f *Form) Banner() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.banner
}

// Submitting reports whether a submit is in flight.
func (f *Form) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// Payload maps the draft into the resource payload shape.
func (f *Form) Payload() map[string]interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.payloadLocked()
}

func (f *Form) payloadLocked() map[string]interface{} {
	payload := map[string]interface{}{}
	for _, spec := range f.specs {
		if spec.PayloadKey == "" {
			continue
		}
		value := f.values[spec.Name]
		if spec.OmitEmpty && value == "" {
			continue
		}
		if spec.Map != nil {
			payload[spec.PayloadKey] = spec.Map(value)
		} else {
			payload[spec.PayloadKey] = value
		}
	}
	return payload
}

// Submit marks every field touched, aborts on validation failure, and
// otherwise runs fn with the mapped payload. On failure the draft stays
// intact and the extracted message lands in Banner.
func (f *Form) Submit(ctx context.Context, fn SubmitFunc) error {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return ErrSubmitting
	}
	for _, spec := range f.specs {
		f.touched[spec.Name] = true
	}
	if len(f.errorsLocked()) > 0 {
		f.mu.Unlock()
		return ErrInvalid
	}
	f.submitting = true
	f.banner = ""
	payload := f.payloadLocked()
	f.mu.Unlock()

	err := fn(ctx, payload)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false
	if err != nil {
		f.banner = apiclient.ErrorMessage(err, f.submitErrorMessage)
		return err
	}
	return nil
}
