// Package github fetches public contribution calendars for the activity section.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"
)

const (
	DefaultBaseURL  = "https://github-contributions-api.jogruber.de/v4"
	DefaultCacheTTL = time.Hour

	// LastYear selects the rolling twelve months ending today.
	LastYear = "last"
)

var ErrUnknownUser = errors.New("github user not found")

// Palettes are the calendar level colors, lightest to darkest.
var Palettes = map[string][5]string{
	"light": {"#ebedf0", "#9be9a8", "#40c463", "#30a14e", "#216e39"},
	"dark":  {"#161b22", "#0e4429", "#006d32", "#26a641", "#39d353"},
}

// YearOption is one entry of the year picker.
type YearOption struct {
	Value string
	Label string
}

// YearOptions returns "Last Year" followed by the current and three
// previous calendar years.
func YearOptions(now time.Time) []YearOption {
	opts := []YearOption{{Value: LastYear, Label: "Last Year"}}
	for i := 0; i < 4; i++ {
		y := strconv.Itoa(now.Year() - i)
		opts = append(opts, YearOption{Value: y, Label: y})
	}
	return opts
}

// LabelFor returns the label for value, defaulting to "Last Year".
func LabelFor(opts []YearOption, value string) string {
	for _, o := range opts {
		if o.Value == value {
			return o.Label
		}
	}
	return "Last Year"
}

// Day is one cell of the calendar.
type Day struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
	Level int    `json:"level"`
}

// Calendar is a user's contributions for one period.
type Calendar struct {
	Total         map[string]int `json:"total"`
	Contributions []Day          `json:"contributions"`
}

// Sum returns the number of contributions across all days.
func (c *Calendar) Sum() int {
	n := 0
	for _, d := range c.Contributions {
		n += d.Count
	}
	return n
}

// Weeks groups days into columns of seven, starting a new column on Sunday.
func (c *Calendar) Weeks() [][]Day {
	var weeks [][]Day
	var week []Day
	for _, d := range c.Contributions {
		if t, err := time.Parse("2006-01-02", d.Date); err == nil && t.Weekday() == time.Sunday && len(week) > 0 {
			weeks = append(weeks, week)
			week = nil
		}
		week = append(week, d)
	}
	if len(week) > 0 {
		weeks = append(weeks, week)
	}
	return weeks
}

type cacheEntry struct {
	cal     *Calendar
	fetched time.Time
}

// Client fetches calendars and caches them per user and year.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	TTL        time.Duration

	now   func() time.Time
	mu    sync.Mutex
	cache map[string]cacheEntry
}

func NewClient(baseURL string, ttl time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		TTL:        ttl,
		now:        time.Now,
		cache:      map[string]cacheEntry{},
	}
}

// Contributions returns the calendar of username for year ("last" or a
// four digit year).
func (c *Client) Contributions(ctx context.Context, username, year string) (*Calendar, error) {
	if year == "" {
		year = LastYear
	}
	key := username + "|" + year

	c.mu.Lock()
	if e, ok := c.cache[key]; ok && c.now().Sub(e.fetched) < c.TTL {
		c.mu.Unlock()
		return e.cal, nil
	}
	c.mu.Unlock()

	cal, err := c.fetch(ctx, username, year)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cache[key] = cacheEntry{cal: cal, fetched: c.now()}
	c.mu.Unlock()
	return cal, nil
}

func (c *Client) fetch(ctx context.Context, username, year string) (*Calendar, error) {
	u := fmt.Sprintf("%s/%s?y=%s", c.BaseURL, url.PathEscape(username), url.QueryEscape(year))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching contributions for %s: %w", username, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", username, ErrUnknownUser)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("fetching contributions for %s: unexpected status %d", username, resp.StatusCode)
	}

	var cal Calendar
	if err := json.NewDecoder(resp.Body).Decode(&cal); err != nil {
		return nil, fmt.Errorf("decoding contributions: %w", err)
	}
	return &cal, nil
}
