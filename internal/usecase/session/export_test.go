package session

import "time"

// SetClock overrides the clock used for export filenames, for testing
func (uc *SessionUsecase) SetClock(now func() time.Time) {
	uc.now = now
}
