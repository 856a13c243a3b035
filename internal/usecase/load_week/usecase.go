package load_week

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotEngine/internal/domain"
	branchClient "github.com/m04kA/SMC-SlotEngine/internal/integrations/branchservice"
	"github.com/m04kA/SMC-SlotEngine/internal/infra/weekcache"
)

// msgAvailabilityFetchFailed текст неблокирующего уведомления при неудачном
// запросе занятых слотов (fail-open)
const msgAvailabilityFetchFailed = "не удалось загрузить занятые слоты, все слоты показаны свободными"

// UseCase use case загрузки недели филиала
type UseCase struct {
	branchClient BranchServiceClient
	cache        WeekCache
	engine       Engine
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	branchClient BranchServiceClient,
	cache WeekCache,
	engine Engine,
	logger Logger,
) *UseCase {
	return &UseCase{
		branchClient: branchClient,
		cache:        cache,
		engine:       engine,
		logger:       logger,
	}
}

// Execute выполняет use case загрузки недели
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("LoadWeek: user=%d, branch=%d, week=%s",
		req.UserID, req.BranchID, req.WeekStart.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("LoadWeek: validation failed: %v", err)
		return nil, err
	}

	weekStart := domain.NormalizeWeekStart(req.WeekStart)

	// 2. Получаем конфигурацию филиала
	branch, err := uc.branchClient.GetBranch(ctx, req.BranchID)
	if err != nil {
		if errors.Is(err, branchClient.ErrBranchNotFound) {
			uc.logger.Warn("LoadWeek: branch id=%d not found", req.BranchID)
			return nil, ErrBranchNotFound
		}
		uc.logger.Error("LoadWeek: failed to get branch id=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: failed to get branch: %v", ErrInternal, err)
	}

	// 3. Получаем тарифы филиала
	prices, err := uc.branchClient.GetPrices(ctx, req.BranchID)
	if err != nil {
		if errors.Is(err, branchClient.ErrPricesNotFound) {
			uc.logger.Warn("LoadWeek: prices for branch id=%d not configured", req.BranchID)
			return nil, fmt.Errorf("%w: branch prices are not configured", ErrInvalidSchedule)
		}
		uc.logger.Error("LoadWeek: failed to get prices for branch id=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: failed to get prices: %v", ErrInternal, err)
	}

	// 4. Вычисляем даты активных дней недели
	days, err := resolveWeekDays(branch.ActiveDayRange, weekStart)
	if err != nil {
		uc.logger.Warn("LoadWeek: invalid day range %q for branch id=%d: %v",
			branch.ActiveDayRange, req.BranchID, err)
		return nil, err
	}

	// 5. Генерируем метки слотов, разделенные границей утро/день
	morningSlots, afternoonSlots, err := generateSlotLabels(branch.OpenTime, branch.CloseTime)
	if err != nil {
		uc.logger.Warn("LoadWeek: invalid working hours for branch id=%d: %v", req.BranchID, err)
		return nil, err
	}

	// 6. Загружаем занятые слоты недели (кэш или fetch)
	// Ошибка fetch не блокирует загрузку: кэш заполняется пустым списком,
	// оператор получает неблокирующее уведомление (fail-open)
	availabilityNotice := ""
	if _, err := uc.cache.Get(ctx, req.BranchID, weekStart); err != nil {
		if !errors.Is(err, weekcache.ErrFetchFailed) {
			uc.logger.Error("LoadWeek: unexpected cache error: %v", err)
			return nil, fmt.Errorf("%w: failed to get unavailable slots: %v", ErrInternal, err)
		}
		uc.logger.Warn("LoadWeek: availability fetch failed for branch=%d, week=%s, failing open: %v",
			req.BranchID, weekStart.Format(domain.DateFormat), err)
		availabilityNotice = msgAvailabilityFetchFailed
	}

	// 7. Сохраняем неделю в сессию движка
	schedule := domain.BranchSchedule{
		BranchID:       branch.ID,
		OpenTime:       branch.OpenTime,
		CloseTime:      branch.CloseTime,
		ActiveDayRange: branch.ActiveDayRange,
		WeekdayPrice:   prices.WeekdayPrice,
		WeekendPrice:   prices.WeekendPrice,
	}
	uc.engine.SetWeek(req.UserID, schedule, weekStart, days, morningSlots, afternoonSlots)

	// 8. Собираем полный снимок сетки
	cells, err := uc.engine.WeekGrid(req.UserID)
	if err != nil {
		uc.logger.Error("LoadWeek: failed to build grid for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to build grid: %v", ErrInternal, err)
	}

	dayStrings := make([]string, len(days))
	for i, d := range days {
		dayStrings[i] = d.Format(domain.DateFormat)
	}

	connState := uc.engine.ConnectionState()

	uc.logger.Info("LoadWeek: loaded %d days, %d+%d slots, %d cells for user=%d, branch=%d",
		len(days), len(morningSlots), len(afternoonSlots), len(cells), req.UserID, req.BranchID)

	return &Response{
		BranchID:           req.BranchID,
		WeekStart:          weekStart,
		Days:               dayStrings,
		MorningSlots:       morningSlots,
		AfternoonSlots:     afternoonSlots,
		Cells:              cells,
		AvailabilityNotice: availabilityNotice,
		ConnectionState:    connState.String(),
		LiveUpdatesPaused:  connState == domain.StateDisconnected,
		LastBookingResult:  uc.engine.LastBookingResult(req.BranchID),
	}, nil
}
