package strava

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBaseURL = "https://www.strava.com/api/v3"

// Client is a thin read-only Strava API client. It takes a caller-supplied
// bearer token; token acquisition and refresh happen outside this service.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
}

// NewClient creates a client for the given access token.
func NewClient(accessToken string) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: 60 * time.Second},
		baseURL:     defaultBaseURL,
		accessToken: accessToken,
	}
}

// NewClientWithBaseURL creates a client against a non-default endpoint,
// used by tests.
func NewClientWithBaseURL(accessToken, baseURL string) *Client {
	c := NewClient(accessToken)
	c.baseURL = baseURL
	return c
}

// ListActivities fetches one page of the athlete's activities.
func (c *Client) ListActivities(ctx context.Context, page, perPage int) ([]ActivitySummary, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))

	var activities []ActivitySummary
	if err := c.get(ctx, "/athlete/activities?"+q.Encode(), &activities); err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, nil
}

// GetActivityStreams fetches the per-second streams for one activity,
// keyed by stream type.
func (c *Client) GetActivityStreams(ctx context.Context, activityID int64) (StreamSet, error) {
	q := url.Values{}
	q.Set("keys", "time,latlng,distance,altitude,heartrate,cadence,watts,velocity_smooth,grade_smooth")
	q.Set("key_by_type", "true")

	var streams StreamSet
	path := fmt.Sprintf("/activities/%d/streams?%s", activityID, q.Encode())
	if err := c.get(ctx, path, &streams); err != nil {
		return nil, fmt.Errorf("failed to get activity streams: %w", err)
	}
	return streams, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
