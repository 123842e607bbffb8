package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/KrisDawg/family-sync/internal/config"
	"github.com/KrisDawg/family-sync/internal/logger"
	"github.com/KrisDawg/family-sync/models"
)

type httpGateway struct {
	client *resty.Client
	logger *logger.Logger
}

// NewHTTPGateway builds a [Gateway] for the backend at cfg.BaseURL.
// Requests are bounded by cfg.RequestTimeout end to end; the connection
// attempt alone is bounded by cfg.ConnectTimeout.
func NewHTTPGateway(cfg config.ClientGateway, log *logger.Logger) Gateway {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:5000"
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 8 * time.Second
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 5 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.RequestTimeout).
		SetTransport(&http.Transport{
			DialContext: (&net.Dialer{Timeout: cfg.ConnectTimeout}).DialContext,
		})

	return &httpGateway{client: cli, logger: log}
}

func (g *httpGateway) Execute(ctx context.Context, call Call) (models.APIResponse, error) {
	if len(call.Body) > 0 && !json.Valid(call.Body) {
		return models.APIResponse{}, fmt.Errorf("%w: request body is not valid JSON", ErrSerialization)
	}

	req := g.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json")
	if len(call.Params) > 0 {
		req.SetQueryParams(call.Params)
	}
	if len(call.Body) > 0 {
		req.SetBody([]byte(call.Body))
	}
	if call.IdempotencyKey != "" && call.Method != http.MethodGet {
		req.SetHeader("Idempotency-Key", call.IdempotencyKey)
	}

	start := time.Now()
	resp, err := req.Execute(call.Method, apiPath(call.Endpoint))
	elapsed := time.Since(start)

	rec := g.logger.Info()
	if err != nil {
		rec = g.logger.Warn().Err(err)
	}
	rec.Str("method", call.Method).
		Str("endpoint", call.Endpoint).
		Int("status", statusCode(resp)).
		Dur("elapsed", elapsed).
		Msg("backend call")

	if err != nil {
		return models.APIResponse{}, mapTransportError(err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.APIResponse{}, err
	}

	payload := resp.Body()
	if len(payload) > 0 && !json.Valid(payload) {
		return models.APIResponse{}, fmt.Errorf("%w: response body is not valid JSON", ErrSerialization)
	}

	result := models.APIResponse{StatusCode: resp.StatusCode()}
	if len(payload) > 0 {
		result.Payload = json.RawMessage(payload)
	}
	return result, nil
}

func apiPath(endpoint string) string {
	return "/api/" + strings.Trim(endpoint, "/")
}

func statusCode(resp *resty.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode()
}
