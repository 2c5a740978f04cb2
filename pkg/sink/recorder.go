package sink

import (
	"context"
	"sync"
)

// Recorder keeps submissions in memory. It can be primed with an error to
// simulate a failing consumer.
type Recorder struct {
	mu          sync.Mutex
	submissions []Submission
	err         error
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// FailWith makes subsequent submissions fail with err (nil restores success).
func (r *Recorder) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

func (*Recorder) archive() {}

func (r *Recorder) Submit(ctx context.Context, submission Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.submissions = append(r.submissions, submission)
	return nil
}

// Submissions returns a copy of the recorded submissions.
func (r *Recorder) Submissions() []Submission {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Submission(nil), r.submissions...)
}

// Len reports how many submissions were recorded.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.submissions)
}
