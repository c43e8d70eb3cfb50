package weatherstack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/namefreezers/weather-lookup-api/internal/config"
	"github.com/namefreezers/weather-lookup-api/internal/weather"
	"github.com/namefreezers/weather-lookup-api/internal/weather/types"
)

const currentPath = "/current"

// Client queries the weatherstack current-weather endpoint.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	tracer  trace.Tracer
	logger  *zap.Logger
}

// NewClient returns a Client. An empty API key is accepted here; FetchCurrent
// reports it as weather.ErrMissingAPIKey on every call.
func NewClient(cfg *config.Config, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		apiKey:  cfg.WeatherstackAPIKey,
		baseURL: cfg.WeatherstackBaseURL,
		http:    httpClient,
		tracer:  otel.Tracer("weatherstack"),
		logger:  logger,
	}
}

// FetchCurrent implements weather.Fetcher.
func (c *Client) FetchCurrent(ctx context.Context, location string) (types.Document, error) {
	if c.apiKey == "" {
		return nil, weather.ErrMissingAPIKey
	}

	ctx, span := c.tracer.Start(ctx, "weatherstack.current",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("weather.location", location)),
	)
	defer span.End()

	doc, err := c.fetch(ctx, location)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return doc, nil
}

func (c *Client) fetch(ctx context.Context, location string) (types.Document, error) {
	q := url.Values{}
	q.Set("access_key", c.apiKey)
	q.Set("query", location)
	endpoint := c.baseURL + currentPath + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: weatherstack: failed to build request: %w", weather.ErrUpstream, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("weatherstack request failed", zap.String("location", location), zap.Error(redact(err)))
		return nil, fmt.Errorf("%w: weatherstack: HTTP request failed: %w", weather.ErrUpstream, redact(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: weatherstack: reading body: %w", weather.ErrUpstream, err)
	}

	// The status code is not checked: weatherstack reports its own errors
	// inside the body.
	var doc types.Document
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		c.logger.Error("weatherstack returned unparsable body",
			zap.String("location", location),
			zap.Int("status", resp.StatusCode),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: weatherstack: JSON decode error: %w", weather.ErrUpstream, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		c.logger.Error("weatherstack returned trailing data after JSON document",
			zap.String("location", location),
			zap.Int("status", resp.StatusCode),
		)
		return nil, fmt.Errorf("%w: weatherstack: trailing data after JSON document", weather.ErrUpstream)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: weatherstack: empty JSON document", weather.ErrUpstream)
	}

	if perr, ok := weather.ProviderError(doc); ok {
		c.logger.Warn("weatherstack reported an error in its response",
			zap.String("location", location),
			zap.Any("provider_error", perr),
		)
	} else {
		c.logger.Debug("weatherstack response received",
			zap.String("location", location),
			zap.Int("status", resp.StatusCode),
		)
	}
	return doc, nil
}

// redact strips the query string (which carries access_key) from URL errors.
func redact(err error) error {
	var uerr *url.Error
	if !errors.As(err, &uerr) {
		return err
	}
	u, perr := url.Parse(uerr.URL)
	if perr != nil {
		return uerr.Err
	}
	u.RawQuery = ""
	return &url.Error{Op: uerr.Op, URL: u.String(), Err: uerr.Err}
}
