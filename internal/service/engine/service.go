package engine

import (
	"sync"
	"time"

	"github.com/m04kA/SMC-SlotEngine/internal/domain"
	"github.com/m04kA/SMC-SlotEngine/internal/infra/livechannel"
	"github.com/m04kA/SMC-SlotEngine/pkg/ptr"
)

// Service оркестратор бронирования: владеет сессиями операторов, недельным
// кэшем занятых слотов и подпиской на live-канал
//
// Все ошибки компонентов переводятся здесь (и в use case-ах) в ошибки
// доменной таксономии; сырые ошибки транспорта наружу не выходят
type Service struct {
	cache        WeekCache
	channel      LiveChannel
	timeProvider TimeProvider
	logger       Logger

	sessions *sessionStore

	// lastBookingResult последний результат попытки бронирования по филиалу
	// из потока slot_booking_result; nil - событий еще не было
	resultMu          sync.RWMutex
	lastBookingResult map[int64]*bool

	unsubscribe func()
}

// NewService создает оркестратор и подписывает его на live-канал
func NewService(
	cache WeekCache,
	channel LiveChannel,
	logger Logger,
) *Service {
	s := &Service{
		cache:             cache,
		channel:           channel,
		timeProvider:      &RealTimeProvider{},
		logger:            logger,
		sessions:          newSessionStore(),
		lastBookingResult: make(map[int64]*bool),
	}
	s.unsubscribe = channel.Subscribe(s.handleLiveEvent)
	return s
}

// ReleaseSubscription отписывает оркестратор от live-канала
// Транспортное соединение канала при этом не закрывается
func (s *Service) ReleaseSubscription() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

// SetWeek сохраняет загруженную неделю в сессию оператора
// При смене филиала выбор сбрасывается; при смене недели в рамках
// одного филиала выбор сохраняется
func (s *Service) SetWeek(
	userID int64,
	schedule domain.BranchSchedule,
	weekStart time.Time,
	days []time.Time,
	morningSlots, afternoonSlots []string,
) {
	selection := domain.NewSelectionSet()

	if prev, ok := s.sessions.get(userID); ok {
		if prev.BranchID == schedule.BranchID {
			selection = prev.Selection
		} else {
			s.logger.Info("engine: branch changed for user=%d (%d -> %d), selection cleared",
				userID, prev.BranchID, schedule.BranchID)
		}
	}

	s.sessions.put(&Session{
		UserID:         userID,
		BranchID:       schedule.BranchID,
		Schedule:       schedule,
		WeekStart:      domain.NormalizeWeekStart(weekStart),
		Days:           days,
		MorningSlots:   morningSlots,
		AfternoonSlots: afternoonSlots,
		Selection:      selection,
	})
}

// Session возвращает текущую сессию оператора
func (s *Service) Session(userID int64) (*Session, error) {
	sess, ok := s.sessions.get(userID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Toggle применяет выбор слота по правилам ротации (см. domain.SelectionSet)
func (s *Service) Toggle(userID int64, date, slotLabel string, price float64) (*domain.ToggleResult, error) {
	sess, ok := s.sessions.get(userID)
	if !ok {
		return nil, ErrSessionNotFound
	}

	if !sess.HasDate(date) || !sess.HasSlotLabel(slotLabel) {
		s.logger.Warn("engine: toggle for unknown cell (date=%s, slot=%q) by user=%d", date, slotLabel, userID)
		return nil, ErrUnknownCell
	}

	result, err := sess.Selection.Toggle(date, slotLabel, price)
	if err != nil {
		// Единственная ошибка Toggle - превышение лимита; без мутаций
		s.logger.Info("engine: selection limit reached for user=%d", userID)
		return nil, ErrSelectionLimit
	}

	if result.Evicted != nil {
		s.logger.Info("engine: rotated selection for user=%d, evicted slot=%s", userID, result.Evicted.SlotID)
	}
	return result, nil
}

// Remove удаляет запись выбора по идентификатору
func (s *Service) Remove(userID int64, slotID string) error {
	sess, ok := s.sessions.get(userID)
	if !ok {
		return ErrSessionNotFound
	}

	if !sess.Selection.Remove(slotID) {
		return ErrSlotNotSelected
	}
	return nil
}

// ClearSelection очищает выбор оператора (после успешной передачи в оплату)
func (s *Service) ClearSelection(userID int64) {
	if sess, ok := s.sessions.get(userID); ok {
		sess.Selection.Clear()
	}
}

// ConnectionState возвращает текущее состояние live-канала
func (s *Service) ConnectionState() domain.ConnectionState {
	return s.channel.State()
}

// LastBookingResult возвращает последний результат бронирования по филиалу
// nil означает, что событий еще не приходило
func (s *Service) LastBookingResult(branchID int64) *bool {
	s.resultMu.RLock()
	defer s.resultMu.RUnlock()
	return s.lastBookingResult[branchID]
}

// handleLiveEvent обрабатывает событие live-канала
//
// События статуса слота мутируют соответствующую запись недельного кэша
// на месте; события для незагруженных недель отбрасываются - их покроет
// отложенный fetch. События результата бронирования запоминаются по филиалу
func (s *Service) handleLiveEvent(event livechannel.Event) {
	switch event.Stream {
	case livechannel.StreamSlotStatus:
		applied := s.cache.Apply(event.BranchID, event.Date, event.StartTime, event.Reserved)
		if applied {
			s.logger.Info("engine: applied slot status update branch=%d date=%s slot=%s reserved=%t",
				event.BranchID, event.Date, event.StartTime, event.Reserved)
		}

	case livechannel.StreamBookingResult:
		s.resultMu.Lock()
		s.lastBookingResult[event.BranchID] = ptr.Ptr(event.Booked)
		s.resultMu.Unlock()
		s.logger.Info("engine: booking result for branch=%d: booked=%t", event.BranchID, event.Booked)

	default:
		s.logger.Warn("engine: ignoring event of unknown stream %q", event.Stream)
	}
}
