// Package apiclient is the typed REST client for the trip endpoints.
package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"tripmate/internal/domain"
)

const defaultTripTTL = time.Minute

type Client struct {
	http    *http.Client
	baseURL string
	token   string
	logger  *zap.Logger

	ttl   time.Duration
	trips sync.Map
}

type cachedTrip struct {
	trip *domain.Trip
	ts   time.Time
}

func New(baseURL, token string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		logger:  logger,
		ttl:     defaultTripTTL,
	}
}

func (c *Client) url(format string, args ...any) string {
	return c.baseURL + fmt.Sprintf(format, args...)
}

func (c *Client) req(path string) *request {
	return newRequest(c.http, path, c.logger).Token(c.token)
}

// WebSocketURL derives the realtime endpoint from the base URL.
func (c *Client) WebSocketURL() string {
	u := c.baseURL
	switch {
	case strings.HasPrefix(u, "https://"):
		u = "wss://" + strings.TrimPrefix(u, "https://")
	case strings.HasPrefix(u, "http://"):
		u = "ws://" + strings.TrimPrefix(u, "http://")
	}
	return u + "/ws"
}

// GetTrip returns the trip, served from a short-lived local cache when fresh.
func (c *Client) GetTrip(ctx context.Context, tripID int64) (*domain.Trip, error) {
	if v, ok := c.trips.Load(tripID); ok {
		e := v.(cachedTrip)
		if time.Since(e.ts) < c.ttl {
			return e.trip, nil
		}
	}

	var trip domain.Trip
	if err := c.req(c.url("/api/trips/%d", tripID)).JSON(ctx, &trip); err != nil {
		return nil, err
	}

	c.trips.Store(tripID, cachedTrip{trip: &trip, ts: time.Now()})

	return &trip, nil
}

func (c *Client) InvalidateTrip(tripID int64) {
	c.trips.Delete(tripID)
}

func (c *Client) UpdateInviteExpiration(ctx context.Context, tripID int64, minutes *int) (*time.Time, error) {
	var res domain.InviteExpirationResponse
	err := c.req(c.url("/api/trips/%d/invite-expiration", tripID)).
		Post(domain.InviteExpirationInput{ExpirationMinutes: minutes}).
		JSON(ctx, &res)
	if err != nil {
		return nil, err
	}

	return res.ExpiresAt, nil
}

func (c *Client) RegenerateInvite(ctx context.Context, tripID int64, minutes *int) (*domain.RegenerateInviteResponse, error) {
	var res domain.RegenerateInviteResponse
	err := c.req(c.url("/api/trips/%d/regenerate-invite", tripID)).
		Post(domain.InviteExpirationInput{ExpirationMinutes: minutes}).
		JSON(ctx, &res)
	if err != nil {
		return nil, err
	}

	return &res, nil
}

func (c *Client) JoinTrip(ctx context.Context, code, userName string) (*domain.Trip, error) {
	var trip domain.Trip
	err := c.req(c.url("/api/trips/join")).
		Post(domain.JoinTripInput{InviteCode: code, UserName: userName}).
		JSON(ctx, &trip)
	if err != nil {
		return nil, err
	}

	return &trip, nil
}

func (c *Client) SendInviteEmail(ctx context.Context, tripID int64, email string) error {
	return c.req(c.url("/api/trips/%d/invite-email", tripID)).
		Post(domain.InviteEmailInput{Email: email}).
		JSON(ctx, nil)
}

// ReportActivity asks the server to notify every trip member of an event.
func (c *Client) ReportActivity(ctx context.Context, tripID int64, input domain.ActivityInput) error {
	return c.req(c.url("/api/trips/%d/activity", tripID)).
		Post(input).
		JSON(ctx, nil)
}
