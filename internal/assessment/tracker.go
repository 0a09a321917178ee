package assessment

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Record tracks one submission through the pipeline.
type Record struct {
	ID    string
	Stage Stage

	// FailureReason is set when Stage is StageFailed.
	FailureReason string

	// Result is set when Stage is StageDone.
	Result *Assessment

	SubmittedAt time.Time
	UpdatedAt   time.Time

	seq uint64
}

// Tracker follows submissions through the pipeline. The most recent
// submission wins: Latest always reflects the newest Begin, and a
// slower older run finishing later never clobbers it.
type Tracker struct {
	mu      sync.RWMutex
	nextSeq uint64
	current *Record
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Begin registers a new submission and makes it the latest.
func (t *Tracker) Begin() *Record {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.nextSeq++
	rec := &Record{
		ID:          newAssessmentID(),
		Stage:       StageIdle,
		SubmittedAt: time.Now(),
		UpdatedAt:   time.Now(),
		seq:         t.nextSeq,
	}
	t.current = rec

	return rec
}

// SetStage updates the stage of a submission.
func (t *Tracker) SetStage(rec *Record, stage Stage) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec.Stage = stage
	rec.UpdatedAt = time.Now()
}

// Complete marks a submission as done with its result, returning a copy
// of the finished record. Callers respond with that copy rather than
// Latest, which may already point at a newer submission.
func (t *Tracker) Complete(rec *Record, result *Assessment) Record {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec.Stage = StageDone
	rec.Result = result
	rec.UpdatedAt = time.Now()

	return *rec
}

// Fail marks a submission as failed with a reason.
func (t *Tracker) Fail(rec *Record, reason string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec.Stage = StageFailed
	rec.FailureReason = reason
	rec.UpdatedAt = time.Now()
}

// Latest returns a copy of the most recent submission's record, or
// false when nothing has been submitted yet.
func (t *Tracker) Latest() (Record, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.current == nil {
		return Record{}, false
	}
	return *t.current, true
}

// IsLatest reports whether rec is still the most recent submission.
func (t *Tracker) IsLatest(rec *Record) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.current != nil && t.current.seq == rec.seq
}

// newAssessmentID generates a short unique assessment identifier.
func newAssessmentID() string {
	return "asm_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:22]
}
