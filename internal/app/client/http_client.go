package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	"golang.org/x/exp/slog"

	"hmis/internal/app/client/config"
	"hmis/internal/domain/export"
	"hmis/internal/domain/sync"
)

// ServerError - ответ сервера со статусом 4xx/5xx.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("ошибка сервера (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("ошибка сервера: статус %d", e.Status)
}

type httpClient struct {
	client    *http.Client
	log       *slog.Logger
	baseURL   string
	userAgent string
}

func NewHTTPClient(cfg *config.Config, log *slog.Logger) *httpClient {
	client := &http.Client{
		Timeout: cfg.RequestTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 2,
		},
	}

	return &httpClient{
		client:    client,
		log:       log.With("component", "http_client"),
		baseURL:   cfg.BaseURL(),
		userAgent: "HMIS-Client/1.0",
	}
}

// HealthCheck проверяет доступность сервера
func (h *httpClient) HealthCheck(ctx context.Context) error {
	resp, err := h.do(ctx, http.MethodGet, "/api/health", nil)
	if err != nil {
		return err
	}
	return h.parseResponse(resp, nil)
}

// PushBatch отправляет пакет записей одного вида на /api/sync/<entity>.
func (h *httpClient) PushBatch(ctx context.Context, entity sync.Entity, payloads []json.RawMessage) (*sync.BatchResponse, error) {
	if payloads == nil {
		payloads = []json.RawMessage{}
	}
	body, err := json.Marshal(payloads)
	if err != nil {
		return nil, fmt.Errorf("ошибка маршалинга пакета: %w", err)
	}

	resp, err := h.do(ctx, http.MethodPost, "/api/sync/"+string(entity), body)
	if err != nil {
		return nil, err
	}

	var out sync.BatchResponse
	if err := h.parseResponse(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (h *httpClient) Status(ctx context.Context) (*sync.StatusResponse, error) {
	resp, err := h.do(ctx, http.MethodGet, "/api/sync/status", nil)
	if err != nil {
		return nil, err
	}

	var out sync.StatusResponse
	if err := h.parseResponse(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Export скачивает CSV-выгрузку. Имя файла берется из Content-Disposition.
func (h *httpClient) Export(ctx context.Context, kind export.Kind) (*export.File, error) {
	path := "/api/export/" + string(kind)
	if kind == export.KindLegacy {
		path = "/export.csv"
	}

	resp, err := h.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения ответа: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, serverError(resp.StatusCode, body)
	}

	name := string(kind) + ".csv"
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil && params["filename"] != "" {
		name = params["filename"]
	}
	return &export.File{Name: name, Body: body}, nil
}

func (h *httpClient) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	req.Header.Set("User-Agent", h.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	h.log.Debug("Отправка запроса", "method", method, "url", req.URL.String())

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	return resp, nil
}

func (h *httpClient) parseResponse(resp *http.Response, result any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	h.log.Debug("Получен ответ", "status", resp.StatusCode, "body", string(body))

	if resp.StatusCode >= 400 {
		return serverError(resp.StatusCode, body)
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("ошибка парсинга ответа: %w", err)
		}
	}
	return nil
}

func serverError(status int, body []byte) error {
	var errResp struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(body, &errResp)
	return &ServerError{Status: status, Message: errResp.Error}
}
