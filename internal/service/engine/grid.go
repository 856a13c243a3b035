package engine

import (
	"time"

	"github.com/m04kA/SMC-SlotEngine/internal/domain"
)

// GridFor возвращает вычисленное состояние ячейки (дата, слот)
// Состояние не хранится: пересчитывается из сессии, кэша и выбора
func (s *Service) GridFor(userID int64, date, slotLabel string) (*domain.GridCell, error) {
	sess, ok := s.sessions.get(userID)
	if !ok {
		return nil, ErrSessionNotFound
	}

	if !sess.HasDate(date) || !sess.HasSlotLabel(slotLabel) {
		return nil, ErrUnknownCell
	}

	return s.buildCell(sess, date, slotLabel)
}

// WeekGrid возвращает полный снимок сетки загруженной недели:
// по ячейке на каждую пару (активный день, слот)
func (s *Service) WeekGrid(userID int64) ([]domain.GridCell, error) {
	sess, ok := s.sessions.get(userID)
	if !ok {
		return nil, ErrSessionNotFound
	}

	labels := make([]string, 0, len(sess.MorningSlots)+len(sess.AfternoonSlots))
	labels = append(labels, sess.MorningSlots...)
	labels = append(labels, sess.AfternoonSlots...)

	cells := make([]domain.GridCell, 0, len(sess.Days)*len(labels))
	for _, day := range sess.Days {
		date := day.Format(domain.DateFormat)
		for _, label := range labels {
			cell, err := s.buildCell(sess, date, label)
			if err != nil {
				return nil, err
			}
			cells = append(cells, *cell)
		}
	}
	return cells, nil
}

func (s *Service) buildCell(sess *Session, date, slotLabel string) (*domain.GridCell, error) {
	start, _, err := domain.ParseSlotLabel(slotLabel)
	if err != nil {
		s.logger.Error("engine: malformed slot label %q in session of user=%d: %v", slotLabel, sess.UserID, err)
		return nil, ErrInternal
	}

	day, err := time.Parse(domain.DateFormat, date)
	if err != nil {
		return nil, ErrUnknownCell
	}

	cell := &domain.GridCell{
		Date:           date,
		SlotLabel:      slotLabel,
		Price:          sess.Schedule.PriceFor(day),
		IsPast:         s.isPast(day, slotLabel),
		IsUnavailable:  s.cache.IsUnavailable(sess.BranchID, date, start),
		OccupancyCount: sess.Selection.OccupancyCount(date, slotLabel),
	}
	cell.IsSelected = cell.OccupancyCount > 0
	return cell, nil
}

// isPast слот считается прошедшим, если его дата строго раньше сегодняшней,
// либо это сегодня и текущее время позже начала слота плюс льготный интервал
// (PastGraceMinutes). Льготный интервал поглощает расхождение часов и дает
// забронировать слот сразу после его номинального начала
func (s *Service) isPast(day time.Time, slotLabel string) bool {
	now := s.timeProvider.Now()

	dayOnly := domain.DateOnly(day)
	today := domain.DateOnly(now)

	if dayOnly.Before(today) {
		return true
	}
	if !dayOnly.Equal(today) {
		return false
	}

	start, _, err := domain.ParseSlotLabel(slotLabel)
	if err != nil {
		return false
	}

	startMinutes, err := start.TotalMinutes()
	if err != nil {
		return false
	}

	deadline := today.Add(time.Duration(startMinutes+domain.PastGraceMinutes) * time.Minute)
	return now.After(deadline)
}
