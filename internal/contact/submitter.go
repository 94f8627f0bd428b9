package contact

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// DefaultDelay is the simulated network latency of a submission.
const DefaultDelay = 2000 * time.Millisecond

// ErrBusy is returned when a submission is already in flight.
var ErrBusy = errors.New("submission already in progress")

var tracer = otel.Tracer("github.com/anuptiwari/portfolio/internal/contact")

// State is the submitter's phase.
type State int

const (
	Idle State = iota
	Submitting
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// Option configures a Submitter.
type Option func(*Submitter)

// WithDelay overrides DefaultDelay. Non-positive values complete immediately.
func WithDelay(d time.Duration) Option {
	return func(s *Submitter) { s.delay = d }
}

// WithAfter replaces time.After, letting tests drive the delay.
func WithAfter(after func(time.Duration) <-chan time.Time) Option {
	return func(s *Submitter) { s.after = after }
}

// WithSinks adds destinations for completed submissions. LogSink is always
// present.
func WithSinks(sinks ...Sink) Option {
	return func(s *Submitter) { s.sinks = append(s.sinks, sinks...) }
}

// OnChange registers a callback invoked after every state transition.
func OnChange(fn func(State)) Option {
	return func(s *Submitter) { s.onChange = fn }
}

// Submitter owns the contact form fields and runs the simulated submission.
type Submitter struct {
	mu    sync.Mutex
	form  Form
	state State

	delay    time.Duration
	after    func(time.Duration) <-chan time.Time
	sinks    []Sink
	onChange func(State)
	now      func() time.Time
}

// NewSubmitter returns an idle submitter with empty fields.
func NewSubmitter(opts ...Option) *Submitter {
	s := &Submitter{
		delay: DefaultDelay,
		after: time.After,
		sinks: []Sink{LogSink{}},
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fill replaces the field values. Fields are locked while submitting.
func (s *Submitter) Fill(f Form) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Submitting {
		return ErrBusy
	}
	s.form = f
	return nil
}

// Form returns the current field values.
func (s *Submitter) Form() Form {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// State returns the current phase.
func (s *Submitter) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Submit captures the current fields, waits out the delay, hands the
// submission to every sink and then clears the form. Sink failures are
// logged only. If ctx ends during the wait nothing else changes and ctx's
// error is returned.
func (s *Submitter) Submit(ctx context.Context) (Submission, error) {
	s.mu.Lock()
	if s.state == Submitting {
		s.mu.Unlock()
		return Submission{}, ErrBusy
	}
	captured := s.form
	s.state = Submitting
	s.mu.Unlock()
	s.notify(Submitting)

	ctx, span := tracer.Start(ctx, "contact.Submit")
	defer span.End()
	span.SetAttributes(
		attribute.Int("contact.message_length", len(captured.Message)),
		attribute.Int("contact.sinks", len(s.sinks)),
	)

	if s.delay > 0 {
		select {
		case <-ctx.Done():
			span.SetStatus(codes.Error, "cancelled")
			return Submission{}, ctx.Err()
		case <-s.after(s.delay):
		}
	}

	sub := Submission{
		ID:          uuid.NewString(),
		Form:        captured,
		SubmittedAt: s.now().UTC(),
	}
	for _, sink := range s.sinks {
		if err := sink.Record(ctx, sub); err != nil {
			span.RecordError(err)
			log.Printf("Error recording submission %s: %v", sub.ID, err)
		}
	}

	s.mu.Lock()
	s.state = Idle
	s.form = Form{}
	s.mu.Unlock()
	s.notify(Idle)

	return sub, nil
}

func (s *Submitter) notify(state State) {
	if s.onChange != nil {
		s.onChange(state)
	}
}
