package client

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/nestjam/yap-sequencer/internal/api"
	"github.com/nestjam/yap-sequencer/internal/auth"
)

const sequencesPath = "/api/sequences"

// Ошибки, которыми клиент обозначает ответы сервера.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrForbidden     = errors.New("forbidden")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrBadRequest    = errors.New("bad request")
)

// StatusError определяет ошибку, когда сервер ответил неуспешным кодом.
type StatusError struct {
	StatusCode int    // код ответа
	Message    string // текст ответа
}

// Error возвращает текст ошибки.
func (e *StatusError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Message)
}

// Unwrap возвращает ошибку, соответствующую коду ответа.
func (e *StatusError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrAlreadyExists
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusBadRequest:
		return ErrBadRequest
	default:
		return nil
	}
}

// Client представляет клиент сервиса последовательностей.
type Client struct {
	inner *resty.Client
	mu    sync.RWMutex
	token string
}

// Option определяет опцию настройки клиента.
type Option func(*Client)

// New создает экземпляр клиента с переданными опциями.
func New(options ...Option) *Client {
	client := &Client{
		inner: resty.New(),
	}

	client.inner.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		if token, ok := auth.ParseBearer(resp.Header().Get(auth.AuthorizationHeader)); ok {
			client.setToken(token)
		}
		return nil
	})

	for _, opt := range options {
		opt(client)
	}

	return client
}

// WithServerAddress возвращает опцию клиента с указанным адресом сервера.
func WithServerAddress(addr string) Option {
	return func(client *Client) {
		client.inner.SetBaseURL(strings.TrimRight(addr, "/"))
	}
}

// WithToken возвращает опцию клиента с токеном пользователя.
func WithToken(token string) Option {
	return func(client *Client) {
		client.token = token
	}
}

// WithInsecureSkipVerify отключает проверку сертификата сервера.
func WithInsecureSkipVerify() Option {
	return func(client *Client) {
		//nolint:gosec // self-signed certificate of development server
		client.inner.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
}

// Token возвращает токен пользователя. Если токен не задан, клиент получит его в первом ответе сервера.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) setToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Create создает последовательность.
func (c *Client) Create(ctx context.Context, req api.CreateSequenceRequest) (api.Sequence, error) {
	const op = "create sequence"
	var seq api.Sequence

	resp, err := c.request(ctx).
		SetBody(req).
		SetResult(&seq).
		Post(sequencesPath)
	if err = check(resp, err); err != nil {
		return api.Sequence{}, fmt.Errorf("%s: %w", op, err)
	}

	return seq, nil
}

// Get возвращает последовательность по имени.
func (c *Client) Get(ctx context.Context, name string) (api.Sequence, error) {
	const op = "get sequence"
	var seq api.Sequence

	resp, err := c.request(ctx).
		SetPathParam("name", name).
		SetResult(&seq).
		Get(sequencesPath + "/{name}")
	if err = check(resp, err); err != nil {
		return api.Sequence{}, fmt.Errorf("%s: %w", op, err)
	}

	return seq, nil
}

// List возвращает последовательности пользователя.
func (c *Client) List(ctx context.Context) ([]api.Sequence, error) {
	const op = "list sequences"
	var sequences []api.Sequence

	resp, err := c.request(ctx).
		SetResult(&sequences).
		Get(sequencesPath)
	if err = check(resp, err); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return sequences, nil
}

// Take выдает n очередных идентификаторов последовательности.
func (c *Client) Take(ctx context.Context, name string, n int) ([]string, error) {
	const op = "take ids"
	var result api.TakeResponse

	resp, err := c.request(ctx).
		SetPathParam("name", name).
		SetQueryParam("n", strconv.Itoa(n)).
		SetResult(&result).
		Post(sequencesPath + "/{name}/take")
	if err = check(resp, err); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result.IDs, nil
}

// Delete удаляет последовательности пользователя. Удаление выполняется сервером асинхронно.
func (c *Client) Delete(ctx context.Context, names []string) error {
	const op = "delete sequences"

	resp, err := c.request(ctx).
		SetBody(names).
		Delete(sequencesPath)
	if err = check(resp, err); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Convert переводит идентификатор из одного алфавита в другой.
func (c *Client) Convert(ctx context.Context, req api.ConvertRequest) (string, error) {
	const op = "convert id"
	var result api.ConvertResponse

	resp, err := c.request(ctx).
		SetBody(req).
		SetResult(&result).
		Post("/api/convert")
	if err = check(resp, err); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return result.Result, nil
}

func (c *Client) request(ctx context.Context) *resty.Request {
	r := c.inner.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json")

	if token := c.Token(); token != "" {
		r.SetAuthToken(token)
	}

	return r
}

func check(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}

	if resp.IsError() {
		return &StatusError{
			StatusCode: resp.StatusCode(),
			Message:    strings.TrimSpace(resp.String()),
		}
	}

	return nil
}
