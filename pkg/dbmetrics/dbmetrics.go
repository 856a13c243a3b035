package dbmetrics

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/m04kA/SMC-SlotEngine/pkg/metrics"
)

// DBExecutor общий интерфейс выполнения запросов: его реализуют *sql.DB, *sql.Tx
// и обертки с метриками из этого пакета
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// TxExecutor интерфейс исполнителя в рамках транзакции
type TxExecutor interface {
	DBExecutor
	Commit() error
	Rollback() error
}

// ключ контекста для передачи активной транзакции в репозитории
type executorContextKey struct{}

// WithExecutor кладет активный executor (обычно транзакцию) в контекст
// Используется transaction manager-ами
func WithExecutor(ctx context.Context, exec DBExecutor) context.Context {
	return context.WithValue(ctx, executorContextKey{}, exec)
}

// GetExecutor возвращает executor из контекста, если там есть активная
// транзакция, иначе переданный fallback (обычное соединение)
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if exec, ok := ctx.Value(executorContextKey{}).(DBExecutor); ok && exec != nil {
		return exec
	}
	return fallback
}

// DB обертка над *sql.DB, записывающая метрики выполнения запросов
type DB struct {
	db        *sql.DB
	collector *metrics.Metrics
}

// Wrap оборачивает соединение с БД сборщиком метрик
func Wrap(db *sql.DB, collector *metrics.Metrics) *DB {
	return &DB{db: db, collector: collector}
}

// WrapWithDefault оборачивает соединение и запускает фоновый сбор метрик
// connection pool-а до закрытия stopCh
func WrapWithDefault(db *sql.DB, collector *metrics.Metrics, serviceName string, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, collector)
	go wrapped.collectPoolStats(stopCh)
	return wrapped
}

// BeginTx начинает транзакцию, возвращая инструментированный executor
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	tx, err := d.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx, collector: d.collector}, nil
}

// ExecContext выполняет запрос с записью метрик
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.db.ExecContext(ctx, query, args...)
	d.record(query, err, time.Since(start))
	return res, err
}

// QueryContext выполняет запрос с записью метрик
func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.record(query, err, time.Since(start))
	return rows, err
}

// QueryRowContext выполняет запрос с записью метрик
// Ошибка выполнения станет видна только при Scan, поэтому статус здесь всегда ok
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.record(query, nil, time.Since(start))
	return row
}

func (d *DB) record(query string, err error, duration time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	d.collector.RecordDBQuery(queryOperation(query), status, duration)
}

// collectPoolStats периодически снимает статистику connection pool-а
func (d *DB) collectPoolStats(stopCh <-chan struct{}) {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			stats := d.db.Stats()
			d.collector.SetDBPoolStat("open", float64(stats.OpenConnections))
			d.collector.SetDBPoolStat("in_use", float64(stats.InUse))
			d.collector.SetDBPoolStat("idle", float64(stats.Idle))
			d.collector.SetDBPoolStat("wait_count", float64(stats.WaitCount))
		}
	}
}

// Tx инструментированная транзакция
type Tx struct {
	tx        *sql.Tx
	collector *metrics.Metrics
}

func (t *Tx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := t.tx.ExecContext(ctx, query, args...)
	t.record(query, err, time.Since(start))
	return res, err
}

func (t *Tx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.tx.QueryContext(ctx, query, args...)
	t.record(query, err, time.Since(start))
	return rows, err
}

func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := t.tx.QueryRowContext(ctx, query, args...)
	t.record(query, nil, time.Since(start))
	return row
}

func (t *Tx) Commit() error {
	return t.tx.Commit()
}

func (t *Tx) Rollback() error {
	return t.tx.Rollback()
}

func (t *Tx) record(query string, err error, duration time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	t.collector.RecordDBQuery(queryOperation(query), status, duration)
}

// queryOperation извлекает тип операции из SQL запроса (select/insert/update/...)
func queryOperation(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToLower(fields[0])
}
