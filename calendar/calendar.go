package calendar

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/quesurifn/ics-attendance-server/types"
)

// FetchError is returned when the feed cannot be retrieved. It is the only
// failure that aborts a run; nothing is written when it occurs.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error { return e.Err }

type Calendar struct {
	Logger *zap.Logger

	client *resty.Client
}

func New(logger *zap.Logger) *Calendar {
	return &Calendar{
		Logger: logger,
		client: resty.New(),
	}
}

// Download retrieves the raw feed text. Transport errors and non-success
// statuses both surface as a FetchError; retry policy belongs to the caller.
func (c *Calendar) Download(ctx context.Context, url string) (string, error) {
	resp, err := c.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}
	if !resp.IsSuccess() {
		return "", &FetchError{URL: url, StatusCode: resp.StatusCode()}
	}
	return resp.String(), nil
}

// Parse extracts the event list from raw feed text, drops records without a
// usable start date and returns the rest sorted by start time. An event with
// no start has no sort position and no past/future classification, so it is
// unusable downstream.
func (c *Calendar) Parse(data string) []types.Event {
	parsed := ParseEvents(data)

	events := make([]types.Event, 0, len(parsed))
	for _, ev := range parsed {
		if ev.StartDate.IsZero() {
			c.Logger.Warn("dropping event without usable start date",
				zap.String("uid", ev.UID),
				zap.String("summary", ev.Summary),
			)
			continue
		}
		events = append(events, ev)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartDate.Before(events[j].StartDate)
	})

	c.Logger.Info("feed parsed",
		zap.Int("events", len(events)),
		zap.Int("dropped", len(parsed)-len(events)),
	)
	return events
}
