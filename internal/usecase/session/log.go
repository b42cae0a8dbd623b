package session

import (
	"iter"
	"sync"

	"github.com/futig/ai-tutor/internal/entity"
)

// Log is an append-only, ordered record of the questions asked in one session.
// Records are never changed once appended; only Append and Clear mutate the log.
type Log struct {
	mu      sync.Mutex
	records []entity.QARecord
}

func NewLog() *Log {
	return &Log{}
}

// Append adds a record to the end of the log. There is no deduplication and no size cap.
func (l *Log) Append(question, answer string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = append(l.records, entity.QARecord{Question: question, Answer: answer})
}

// Recent yields up to n records, most recently appended first.
// The window is taken when iteration starts, so the sequence can be ranged over again
// and reflects appends made in between.
func (l *Log) Recent(n int) iter.Seq[entity.QARecord] {
	return func(yield func(entity.QARecord) bool) {
		for _, rec := range l.recentNumbered(n) {
			if !yield(rec.QARecord) {
				return
			}
		}
	}
}

// RecentNumbered is Recent with each record labelled by its 1-based position in the full log
func (l *Log) RecentNumbered(n int) iter.Seq[entity.NumberedRecord] {
	return func(yield func(entity.NumberedRecord) bool) {
		for _, rec := range l.recentNumbered(n) {
			if !yield(rec) {
				return
			}
		}
	}
}

func (l *Log) recentNumbered(n int) []entity.NumberedRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n <= 0 {
		return nil
	}

	start := max(len(l.records)-n, 0)
	window := make([]entity.NumberedRecord, 0, len(l.records)-start)
	for i := len(l.records) - 1; i >= start; i-- {
		window = append(window, entity.NumberedRecord{Number: i + 1, QARecord: l.records[i]})
	}
	return window
}

// All returns a copy of every record in insertion order
func (l *Log) All() []entity.QARecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]entity.QARecord, len(l.records))
	copy(out, l.records)
	return out
}

func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.records)
}

// Clear removes every record. Clearing an empty log is a no-op.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = nil
}
