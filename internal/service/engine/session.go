package engine

import (
	"sync"
	"time"

	"github.com/m04kA/SMC-SlotEngine/internal/domain"
)

// Session состояние движка для одного оператора: загруженная неделя филиала
// и текущий выбор слотов. Живет в памяти до конца сессии процесса
type Session struct {
	UserID    int64
	BranchID  int64
	Schedule  domain.BranchSchedule
	WeekStart time.Time

	// Days даты активных дней недели в порядке диапазона
	Days []time.Time

	// MorningSlots и AfternoonSlots метки слотов, разделенные границей BoundaryHour
	MorningSlots   []string
	AfternoonSlots []string

	Selection *domain.SelectionSet
}

// HasDate проверяет, что дата входит в загруженную неделю
func (s *Session) HasDate(date string) bool {
	for _, d := range s.Days {
		if d.Format(domain.DateFormat) == date {
			return true
		}
	}
	return false
}

// HasSlotLabel проверяет, что метка слота входит в сетку
func (s *Session) HasSlotLabel(label string) bool {
	for _, l := range s.MorningSlots {
		if l == label {
			return true
		}
	}
	for _, l := range s.AfternoonSlots {
		if l == label {
			return true
		}
	}
	return false
}

// sessionStore потокобезопасное in-memory хранилище сессий по ID пользователя
type sessionStore struct {
	mu sync.RWMutex
	m  map[int64]*Session
}

func newSessionStore() *sessionStore {
	return &sessionStore{m: make(map[int64]*Session)}
}

func (s *sessionStore) get(userID int64) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.m[userID]
	return sess, ok
}

func (s *sessionStore) put(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[sess.UserID] = sess
}
