package gateway

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

func mapHTTPError(resp *resty.Response) error {
	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))

	switch {
	case code >= http.StatusInternalServerError:
		return &APIError{StatusCode: code, Body: body, kind: ErrServerError}
	case code >= http.StatusBadRequest:
		return &APIError{StatusCode: code, Body: body, kind: ErrClientError}
	default:
		if body == "" {
			body = http.StatusText(code)
		}
		return fmt.Errorf("http %d: %s", code, body)
	}
}

// mapTransportError folds the many ways a request can fail to reach the
// backend into the two transient sentinels the sync engine routes on.
func mapTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", ErrTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %s", ErrTimeout, err)
	}

	return fmt.Errorf("%w: %s", ErrConnectionRefused, err)
}
