package relay

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"flashysurf/internal/domain"
)

// DefaultEndpoint is Mixpanel's ingestion API host.
const DefaultEndpoint = "https://api.mixpanel.com"

var (
	// ErrNoToken is returned when no project token is configured.
	ErrNoToken = errors.New("relay: mixpanel project token required")
	// ErrRejected is returned when Mixpanel accepts the request but not the events.
	ErrRejected = errors.New("relay: events rejected")
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Mixpanel struct {
	Endpoint string
	Token    string
	HTTP     *http.Client
}

var _ domain.EventSink = (*Mixpanel)(nil)

func NewMixpanel(endpoint, token string) (*Mixpanel, error) {
	if token == "" {
		return nil, ErrNoToken
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Mixpanel{
		Endpoint: strings.TrimRight(endpoint, "/"),
		Token:    token,
		HTTP:     &http.Client{Timeout: 10 * time.Second},
	}, nil
}

type trackEvent struct {
	Event      string          `json:"event"`
	Properties trackProperties `json:"properties"`
}

type trackProperties struct {
	Token      string  `json:"token"`
	DistinctID string  `json:"distinct_id,omitempty"`
	Time       int64   `json:"time"`
	InsertID   string  `json:"$insert_id,omitempty"`
	CurrentURL string  `json:"$current_url,omitempty"`
	Source     *string `json:"source"`
	Campaign   *string `json:"campaign"`
}

type trackResponse struct {
	Status int    `json:"status"`
	Error  string `json:"error"`
}

// TrackEvent sends a single event.
func (c *Mixpanel) TrackEvent(ctx context.Context, ev domain.Event) error {
	return c.Track(ctx, ev)
}

// Track sends events in one request.
func (c *Mixpanel) Track(ctx context.Context, events ...domain.Event) error {
	if len(events) == 0 {
		return nil
	}
	batch := make([]trackEvent, len(events))
	for i, ev := range events {
		batch[i] = trackEvent{
			Event: ev.Name.String(),
			Properties: trackProperties{
				Token:      c.Token,
				DistinctID: ev.DistinctID.String(),
				Time:       ev.Time.UnixMilli(),
				InsertID:   ev.InsertID,
				CurrentURL: ev.PageURL,
				Source:     ev.Properties.Source,
				Campaign:   ev.Properties.Campaign,
			},
		}
	}

	var res trackResponse
	if err := c.post(ctx, "/track?verbose=1", batch, &res); err != nil {
		return err
	}
	if res.Status != 1 {
		return fmt.Errorf("%w: %s", ErrRejected, res.Error)
	}
	return nil
}

func (c *Mixpanel) post(ctx context.Context, path string, in any, out any) error {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(in); err != nil {
		return err
	}
	u := c.Endpoint + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("%s %s: %s", req.Method, u, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
