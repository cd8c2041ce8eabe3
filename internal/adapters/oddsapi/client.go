package oddsapi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Sorck29/tennis-arb/internal/domain"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://api.the-odds-api.com/v4"

	// The Odds API cobra por créditos mensuales, no por req/s, pero un burst
	// de requests idénticos quema cuota sin aportar nada: 1 req/s de sobra.
	oddsRatePerSec = 1

	maxRetries    = 3
	baseRetryWait = 500 * time.Millisecond
)

// Quota es el estado de cuota que The Odds API devuelve en cada respuesta.
type Quota struct {
	Remaining string // x-requests-remaining
	Used      string // x-requests-used
	Last      string // x-requests-last: coste de la última llamada
}

// Client es el HTTP client de The Odds API con rate limiting, retries y
// caché TTL por request. Implementa ports.OddsProvider.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	limiter *rate.Limiter

	mu    sync.Mutex
	quota Quota
	cache map[string]cacheEntry
	ttl   time.Duration
}

// cacheEntry es un snapshot cacheado de eventos para una request concreta.
type cacheEntry struct {
	events    []domain.Event
	fetchedAt time.Time
}

// NewClient crea un Client con el base URL dado. Si baseURL está vacío usa
// el URL de producción. ttl <= 0 desactiva la caché.
func NewClient(baseURL, apiKey string, ttl time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		http:    &http.Client{Timeout: 30 * time.Second},
		baseURL: baseURL,
		apiKey:  apiKey,
		limiter: rate.NewLimiter(oddsRatePerSec, 2),
		cache:   make(map[string]cacheEntry),
		ttl:     ttl,
	}
}

// FetchOdds obtiene los próximos eventos del deporte con cuotas h2h decimales.
// Respuestas dentro del TTL se sirven de caché sin gastar cuota.
func (c *Client) FetchOdds(ctx context.Context, sportKey string, regions []string) ([]domain.Event, error) {
	key := sportKey + "|" + strings.Join(regions, ",")
	if events, ok := c.cached(key); ok {
		slog.Debug("odds served from cache", "sport", sportKey, "events", len(events))
		return events, nil
	}

	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("regions", strings.Join(regions, ","))
	params.Set("markets", domain.MarketH2H)
	params.Set("oddsFormat", "decimal")
	params.Set("dateFormat", "iso")

	reqURL := fmt.Sprintf("%s/sports/%s/odds?%s", c.baseURL, url.PathEscape(sportKey), params.Encode())

	var raw []eventResponse
	if err := c.get(ctx, reqURL, &raw); err != nil {
		return nil, fmt.Errorf("oddsapi.FetchOdds: %w", err)
	}

	events := mapEvents(raw)
	c.store(key, events)

	q := c.LastQuota()
	slog.Debug("odds fetched",
		"sport", sportKey,
		"events", len(events),
		"requests_remaining", q.Remaining,
		"requests_used", q.Used,
	)
	return events, nil
}

// LastQuota devuelve la cuota reportada en la última respuesta de la API.
func (c *Client) LastQuota() Quota {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.quota
}

// cached devuelve el snapshot cacheado para la key si aún no expiró.
func (c *Client) cached(key string) ([]domain.Event, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.cache[key]
	if !ok || time.Since(entry.fetchedAt) >= c.ttl {
		return nil, false
	}
	return entry.events, true
}

// store guarda el snapshot en caché.
func (c *Client) store(key string, events []domain.Event) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[key] = cacheEntry{events: events, fetchedAt: time.Now()}
}

// get hace un GET JSON con rate limiting y retries con backoff exponencial.
// 429 y 5xx se reintentan; 4xx es fatal (API key inválida, sport key inexistente).
func (c *Client) get(ctx context.Context, reqURL string, out any) error {
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			if attempt == maxRetries {
				return fmt.Errorf("request failed after %d retries: %w", maxRetries, err)
			}
			c.sleep(ctx, attempt)
			continue
		}

		c.updateQuota(resp.Header)

		if resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()
			slog.Warn("rate limited by The Odds API", "attempt", attempt+1)
			c.sleep(ctx, attempt)
			continue
		}

		if resp.StatusCode >= 500 {
			resp.Body.Close()
			if attempt == maxRetries {
				return fmt.Errorf("server error %d after %d retries", resp.StatusCode, maxRetries)
			}
			c.sleep(ctx, attempt)
			continue
		}

		if resp.StatusCode >= 400 {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return fmt.Errorf("client error %d: %s", resp.StatusCode, string(body))
		}

		err = decodeJSON(resp.Body, out)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}
	return fmt.Errorf("exhausted %d retries", maxRetries)
}

// updateQuota captura los headers de cuota de la respuesta.
func (c *Client) updateQuota(h http.Header) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v := h.Get("x-requests-remaining"); v != "" {
		c.quota.Remaining = v
	}
	if v := h.Get("x-requests-used"); v != "" {
		c.quota.Used = v
	}
	if v := h.Get("x-requests-last"); v != "" {
		c.quota.Last = v
	}
}

// sleep espera con backoff exponencial, respetando el contexto.
func (c *Client) sleep(ctx context.Context, attempt int) {
	wait := time.Duration(math.Pow(2, float64(attempt))) * baseRetryWait
	select {
	case <-time.After(wait):
	case <-ctx.Done():
	}
}
