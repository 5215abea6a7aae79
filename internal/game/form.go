package game

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/idate-tech/luminous/internal/contact"
)

// Retry backoff after a failed transmission.
const (
	DefaultRetryBase = 500 * time.Millisecond
	DefaultRetryMax  = 8 * time.Second
)

var (
	ErrSubmitPending = errors.New("transmission already in progress")
	ErrBackoff       = errors.New("retry not yet allowed")
)

// FormStatus is the contact form's display state.
type FormStatus uint8

const (
	FormIdle FormStatus = iota
	FormSending
	FormSuccess
	FormFailed
)

func (s FormStatus) String() string {
	switch s {
	case FormSending:
		return "sending"
	case FormSuccess:
		return "success"
	case FormFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Form field indices.
const (
	FieldName = iota
	FieldEmail
	FieldMessage
	fieldCount
)

// FieldNames are the user-facing placeholders per field.
var FieldNames = [fieldCount]string{"Identity", "Gateway", "Transmission details..."}

// ValidationError describes the first invalid field.
type ValidationError struct {
	Field  int
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", FieldNames[e.Field], e.Reason)
}

type submitResult struct {
	gen uint64
	err error
}

// Form is the contact form state. Fields and status are only mutated from
// the frame loop; the transmission runs on a goroutine and reports back
// through a channel drained by Poll.
type Form struct {
	Fields   [fieldCount]string
	Focus    int // -1 when no field is focused
	Status   FormStatus
	Attempts int       // consecutive failed attempts
	RetryAt  time.Time // zero when a retry is allowed immediately
	LastErr  error

	RetryBase time.Duration
	RetryMax  time.Duration

	submitter contact.Submitter
	results   chan submitResult
	gen       uint64
	cancel    context.CancelFunc
	closed    bool
}

// NewForm creates an idle form delivering through s.
func NewForm(s contact.Submitter) *Form {
	return &Form{
		Focus:     -1,
		RetryBase: DefaultRetryBase,
		RetryMax:  DefaultRetryMax,
		submitter: s,
		results:   make(chan submitResult, 1),
	}
}

// Editable reports whether the fields accept input.
func (f *Form) Editable() bool {
	return f.Status == FormIdle || f.Status == FormFailed
}

// SetFocus focuses field i (-1 clears focus).
func (f *Form) SetFocus(i int) {
	if i < -1 || i >= fieldCount {
		return
	}
	f.Focus = i
}

// FocusNext cycles focus through the fields.
func (f *Form) FocusNext() {
	f.Focus = (f.Focus + 1) % fieldCount
}

// Type appends r to the focused field.
func (f *Form) Type(r rune) {
	if f.Focus < 0 || !f.Editable() {
		return
	}
	if r == '\n' && f.Focus != FieldMessage {
		return
	}
	f.Fields[f.Focus] += string(r)
}

// Backspace deletes the last rune of the focused field.
func (f *Form) Backspace() {
	if f.Focus < 0 || !f.Editable() {
		return
	}
	rs := []rune(f.Fields[f.Focus])
	if len(rs) > 0 {
		f.Fields[f.Focus] = string(rs[:len(rs)-1])
	}
}

// Payload builds the transmission payload from the trimmed fields.
func (f *Form) Payload() contact.Payload {
	return contact.Payload{
		Name:    strings.TrimSpace(f.Fields[FieldName]),
		Email:   strings.TrimSpace(f.Fields[FieldEmail]),
		Message: strings.TrimSpace(f.Fields[FieldMessage]),
	}
}

// Validate checks required fields and the email shape.
func (f *Form) Validate() error {
	p := f.Payload()
	for i, v := range []string{p.Name, p.Email, p.Message} {
		if v == "" {
			return &ValidationError{Field: i, Reason: "required"}
		}
	}
	if !looksLikeEmail(p.Email) {
		return &ValidationError{Field: FieldEmail, Reason: "not an email address"}
	}
	return nil
}

func looksLikeEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndex(s, "@")
	return at > 0 && strings.Contains(s[at+1:], ".")
}

// Backoff returns the wait imposed after the nth consecutive failure.
func (f *Form) Backoff(n int) time.Duration {
	if n <= 0 {
		return 0
	}
	d := f.RetryBase
	for i := 1; i < n; i++ {
		d *= 2
		if d >= f.RetryMax {
			return f.RetryMax
		}
	}
	if d > f.RetryMax {
		return f.RetryMax
	}
	return d
}

// RetryIn returns how long until a retry is allowed.
func (f *Form) RetryIn(now time.Time) time.Duration {
	if f.Status != FormFailed || !now.Before(f.RetryAt) {
		return 0
	}
	return f.RetryAt.Sub(now)
}

// Submit validates and starts a transmission.
func (f *Form) Submit(now time.Time) error {
	if f.closed {
		return context.Canceled
	}
	switch f.Status {
	case FormSending:
		return ErrSubmitPending
	case FormSuccess:
		return nil
	}
	if f.RetryIn(now) > 0 {
		return ErrBackoff
	}
	if err := f.Validate(); err != nil {
		return err
	}

	f.gen++
	gen := f.gen
	ctx, cancel := context.WithCancel(context.Background())
	f.cancel = cancel
	f.Status = FormSending
	f.Focus = -1
	payload := f.Payload()
	results := f.results
	submitter := f.submitter

	go func() {
		err := submitter.Submit(ctx, payload)
		select {
		case results <- submitResult{gen: gen, err: err}:
		case <-ctx.Done():
		}
	}()
	return nil
}

// Poll applies a finished transmission, if any. It reports whether the
// status changed.
func (f *Form) Poll(now time.Time) bool {
	select {
	case res := <-f.results:
		if f.closed || res.gen != f.gen || f.Status != FormSending {
			return false
		}
		f.cancel()
		f.cancel = nil
		if res.err != nil {
			f.Status = FormFailed
			f.Attempts++
			f.LastErr = res.err
			f.RetryAt = now.Add(f.Backoff(f.Attempts))
			return true
		}
		f.Status = FormSuccess
		f.Attempts = 0
		f.LastErr = nil
		f.RetryAt = time.Time{}
		f.Fields = [fieldCount]string{}
		return true
	default:
		return false
	}
}

// Reset returns the form to idle, abandoning an in-flight transmission.
// Typed input is kept.
func (f *Form) Reset() {
	f.abandon()
	f.Status = FormIdle
	f.Focus = -1
	f.Attempts = 0
	f.RetryAt = time.Time{}
	f.LastErr = nil
}

// NewMessage leaves the success state for a fresh message.
func (f *Form) NewMessage() {
	if f.Status == FormSuccess {
		f.Reset()
	}
}

// Close abandons in-flight work; later results are dropped.
func (f *Form) Close() {
	f.abandon()
	f.closed = true
}

func (f *Form) abandon() {
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	// Bump the generation so a late result from the abandoned call is ignored.
	f.gen++
}

// SubmitLabel is the caption of the submit button. elapsed animates the
// sending ellipsis.
func (f *Form) SubmitLabel(now time.Time, elapsed float64) string {
	switch f.Status {
	case FormSending:
		return "TRANSMITTING" + strings.Repeat(".", int(elapsed*3)%4)
	case FormSuccess:
		return "NEW TRANSMISSION"
	case FormFailed:
		if wait := f.RetryIn(now); wait > 0 {
			return fmt.Sprintf("RETRY IN %.1fs", wait.Round(100*time.Millisecond).Seconds())
		}
		return "RETRY TRANSFER"
	}
	return "INITIATE TRANSFER"
}
