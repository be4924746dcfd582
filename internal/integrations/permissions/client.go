package permissions

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client клиент сервиса прав доступа
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса прав
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// CanPerform проверяет, может ли пользователь выполнить действие над бизнесом.
// Любая ошибка транспорта трактуется как отказ и возвращается вместе с ErrUnavailable.
func (c *Client) CanPerform(ctx context.Context, userID int64, action string, businessID int64) (bool, error) {
	q := url.Values{}
	q.Set("user_id", strconv.FormatInt(userID, 10))
	q.Set("action", action)
	q.Set("business_id", strconv.FormatInt(businessID, 10))
	endpoint := fmt.Sprintf("%s/internal/permissions/check?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("Permissions service unavailable: user_id=%d, action=%s, business_id=%d: %v", userID, action, businessID, err)
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusForbidden, http.StatusNotFound:
		return false, nil
	default:
		body, _ := io.ReadAll(resp.Body)
		return false, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var result CheckResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if !result.Allowed {
		c.log.Warn("Permission denied: user_id=%d, action=%s, business_id=%d, reason=%s", userID, action, businessID, result.Reason)
	}
	return result.Allowed, nil
}
