package handoff

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SlotEngine/internal/domain"
	"github.com/m04kA/SMC-SlotEngine/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotEngine/pkg/psqlbuilder"
)

// Repository репозиторий журнала передач резерваций в оплату
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория журнала
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create записывает передачу резервации в журнал
// Строки резервации хранятся как JSONB
func (r *Repository) Create(ctx context.Context, record *domain.ReservationHandoff) (*domain.ReservationHandoff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	linesJSON, err := json.Marshal(record.Lines)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal lines: %v", ErrEncodeLines, err)
	}

	query, args, err := psqlbuilder.Insert("reservation_handoffs").
		Columns(
			"id",
			"user_id",
			"branch_id",
			"lines",
			"total_price",
			"reservation_id",
		).
		Values(
			record.ID,
			record.UserID,
			record.BranchID,
			linesJSON,
			record.TotalPrice,
			record.ReservationID,
		).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	record.CreatedAt = createdAt.Time
	return record, nil
}

// GetByReservationID получает запись журнала по идентификатору резервации
func (r *Repository) GetByReservationID(ctx context.Context, reservationID string) (*domain.ReservationHandoff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"user_id",
		"branch_id",
		"lines",
		"total_price",
		"reservation_id",
		"created_at",
	).
		From("reservation_handoffs").
		Where(squirrel.Eq{"reservation_id": reservationID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByReservationID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		record    domain.ReservationHandoff
		linesJSON []byte
		createdAt sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&record.ID,
		&record.UserID,
		&record.BranchID,
		&linesJSON,
		&record.TotalPrice,
		&record.ReservationID,
		&createdAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHandoffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByReservationID - scan: %v", ErrScanRow, err)
	}

	if err := json.Unmarshal(linesJSON, &record.Lines); err != nil {
		return nil, fmt.Errorf("%w: GetByReservationID - unmarshal lines: %v", ErrScanRow, err)
	}

	record.CreatedAt = createdAt.Time
	return &record, nil
}

// GetByUserID получает историю передач пользователя, новые записи первыми
func (r *Repository) GetByUserID(ctx context.Context, userID int64, limit uint64) ([]*domain.ReservationHandoff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(
		"id",
		"user_id",
		"branch_id",
		"lines",
		"total_price",
		"reservation_id",
		"created_at",
	).
		From("reservation_handoffs").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC")

	if limit > 0 {
		builder = builder.Limit(limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var records []*domain.ReservationHandoff
	for rows.Next() {
		var (
			record    domain.ReservationHandoff
			linesJSON []byte
			createdAt sql.NullTime
		)

		if err := rows.Scan(
			&record.ID,
			&record.UserID,
			&record.BranchID,
			&linesJSON,
			&record.TotalPrice,
			&record.ReservationID,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("%w: GetByUserID - scan: %v", ErrScanRow, err)
		}

		if err := json.Unmarshal(linesJSON, &record.Lines); err != nil {
			return nil, fmt.Errorf("%w: GetByUserID - unmarshal lines: %v", ErrScanRow, err)
		}

		record.CreatedAt = createdAt.Time
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - rows error: %v", ErrExecQuery, err)
	}

	return records, nil
}
