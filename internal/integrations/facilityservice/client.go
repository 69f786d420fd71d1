package facilityservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Radi03825/PlaySpot-sub000/internal/domain"
	"github.com/Radi03825/PlaySpot-sub000/pkg/requestid"
)

// Client клиент для работы с каталогом объектов
type Client struct {
	baseURL            string
	httpClient         *http.Client
	defaultGranularity int
	log                Logger
}

// NewClient создает новый экземпляр клиента каталога объектов
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// WithDefaultGranularity задаёт шаг сетки для объектов, у которых каталог его не вернул
func (c *Client) WithDefaultGranularity(minutes int) *Client {
	c.defaultGranularity = minutes
	return c
}

// GetFacility получает объект по ID.
// Неактивный объект считается несуществующим.
func (c *Client) GetFacility(ctx context.Context, facilityID int64) (*domain.Facility, error) {
	url := fmt.Sprintf("%s/internal/facilities/%d", c.baseURL, facilityID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if id, ok := requestid.FromContext(ctx); ok {
		req.Header.Set(requestid.Header, id)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid facility ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrFacilityNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var facility Facility
	if err := json.NewDecoder(resp.Body).Decode(&facility); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if !facility.IsActive {
		c.log.Warn("Facility id=%d is inactive", facilityID)
		return nil, ErrFacilityNotFound
	}

	result := facility.ToDomain()
	if result.SlotGranularityMinutes <= 0 {
		result.SlotGranularityMinutes = c.defaultGranularity
	}
	return result, nil
}

// Exists проверяет, что объект есть в каталоге
func (c *Client) Exists(ctx context.Context, facilityID int64) (bool, error) {
	_, err := c.GetFacility(ctx, facilityID)
	if errors.Is(err, ErrFacilityNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
