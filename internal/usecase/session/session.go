package session

import (
	"sync"
	"time"

	"github.com/futig/ai-tutor/internal/entity"
)

// Session is one user's interaction with the tutor: the log of asked questions
// plus the pair currently on display. It is created at session start, changed only
// by Record and Clear, and dropped when the session ends.
type Session struct {
	ID        string
	CreatedAt time.Time

	log *Log

	mu      sync.RWMutex
	current *entity.QARecord
}

func newSession(id string, createdAt time.Time) *Session {
	return &Session{
		ID:        id,
		CreatedAt: createdAt,
		log:       NewLog(),
	}
}

// Record makes the pair current and appends it to the log
func (s *Session) Record(question, answer string) entity.QARecord {
	rec := entity.QARecord{Question: question, Answer: answer}

	s.mu.Lock()
	s.current = &rec
	s.mu.Unlock()

	s.log.Append(question, answer)
	return rec
}

// Current returns the pair on display, if any
func (s *Session) Current() (entity.QARecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return entity.QARecord{}, false
	}
	return *s.current, true
}

// Clear empties the log and forgets the current pair
func (s *Session) Clear() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	s.log.Clear()
}

func (s *Session) Log() *Log {
	return s.log
}

func (s *Session) Snapshot() entity.SessionSnapshot {
	snap := entity.SessionSnapshot{
		ID:          s.ID,
		HistorySize: s.log.Len(),
		CreatedAt:   s.CreatedAt,
	}
	if cur, ok := s.Current(); ok {
		snap.CurrentQuestion = cur.Question
		snap.CurrentAnswer = cur.Answer
	}
	return snap
}
