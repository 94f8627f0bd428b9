package contact

import (
	"context"
	"log"
	"sync"
	"time"
)

// Submission is one captured contact message.
type Submission struct {
	ID          string    `json:"id"`
	Form        Form      `json:"form"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Sink receives completed submissions.
type Sink interface {
	Record(ctx context.Context, s Submission) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, s Submission) error

// Record calls f.
func (f SinkFunc) Record(ctx context.Context, s Submission) error {
	return f(ctx, s)
}

// LogSink writes each submission to the standard logger.
type LogSink struct{}

// Record logs the captured values.
func (LogSink) Record(_ context.Context, s Submission) error {
	log.Printf("Form submitted: name=%q email=%q subject=%q message=%q",
		s.Form.Name, s.Form.Email, s.Form.Subject, s.Form.Message)
	return nil
}

// Recorder keeps submissions in memory.
type Recorder struct {
	mu  sync.Mutex
	got []Submission
}

// Record appends s.
func (r *Recorder) Record(_ context.Context, s Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, s)
	return nil
}

// Submissions returns a copy of everything recorded so far.
func (r *Recorder) Submissions() []Submission {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Submission(nil), r.got...)
}
