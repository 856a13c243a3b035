package branchservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SlotEngine/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с BranchService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента BranchService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetBranch получает конфигурацию работы филиала
func (c *Client) GetBranch(ctx context.Context, branchID int64) (*Branch, error) {
	url := fmt.Sprintf("%s/internal/branches/%d", c.baseURL, branchID)

	body, err := c.get(ctx, url, ErrBranchNotFound)
	if err != nil {
		return nil, err
	}

	var branch Branch
	if err := json.Unmarshal(body, &branch); err != nil {
		return nil, fmt.Errorf("%w: failed to decode branch response: %v", ErrInvalidResponse, err)
	}

	return &branch, nil
}

// GetPrices получает тарифы филиала (будни/выходные)
func (c *Client) GetPrices(ctx context.Context, branchID int64) (*Prices, error) {
	url := fmt.Sprintf("%s/internal/branches/%d/prices", c.baseURL, branchID)

	body, err := c.get(ctx, url, ErrPricesNotFound)
	if err != nil {
		return nil, err
	}

	var prices Prices
	if err := json.Unmarshal(body, &prices); err != nil {
		return nil, fmt.Errorf("%w: failed to decode prices response: %v", ErrInvalidResponse, err)
	}

	return &prices, nil
}

// GetUnavailableSlots получает занятые слоты филиала на неделю, начинающуюся
// с weekStart. Ответ обязан быть JSON-массивом; если сервис вернул не массив,
// это нарушение контракта - логируем ошибку и считаем список пустым
func (c *Client) GetUnavailableSlots(ctx context.Context, branchID int64, weekStart time.Time) ([]UnavailableSlotDTO, error) {
	url := fmt.Sprintf("%s/internal/branches/%d/unavailable-slots?weekStart=%s",
		c.baseURL, branchID, weekStart.Format(domain.DateFormat))

	body, err := c.get(ctx, url, ErrBranchNotFound)
	if err != nil {
		return nil, err
	}

	var slots []UnavailableSlotDTO
	if err := json.Unmarshal(body, &slots); err != nil {
		c.log.Error("GetUnavailableSlots: non-array response for branch=%d, week=%s, treating as empty: %v",
			branchID, weekStart.Format(domain.DateFormat), err)
		return []UnavailableSlotDTO{}, nil
	}

	return slots, nil
}

// get выполняет GET запрос и возвращает тело ответа
// notFoundErr возвращается при статусе 404
func (c *Client) get(ctx context.Context, url string, notFoundErr error) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, notFoundErr
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %v", ErrInvalidResponse, err)
	}

	return body, nil
}
