package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/PavaniTiago/atly-quiz-funnel/internal/domain/entities"
	"github.com/valyala/fasthttp"
)

const (
	DefaultMixpanelURL = "https://api.mixpanel.com"
	PlaceholderToken   = "YOUR_MIXPANEL_TOKEN"
)

// MixpanelCollector sends events and profile updates to the Mixpanel
// ingestion API.
type MixpanelCollector struct {
	client  *fasthttp.Client
	baseURL string
	token   string
	timeout time.Duration
}

func NewMixpanelCollector(baseURL, token string) *MixpanelCollector {
	if baseURL == "" {
		baseURL = DefaultMixpanelURL
	}
	if token == "" {
		token = PlaceholderToken
	}
	return &MixpanelCollector{
		client: &fasthttp.Client{
			Name:         "atly-quiz-funnel",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		timeout: 5 * time.Second,
	}
}

func (c *MixpanelCollector) Track(ctx context.Context, event *entities.Event) error {
	props := event.Envelope()
	props["token"] = c.token
	props["time"] = event.EventTime.UnixMilli()
	props["$insert_id"] = event.EventID.String()
	if event.UserID != "" {
		props["distinct_id"] = event.UserID
	}

	return c.post(ctx, "/track", []map[string]interface{}{{
		"event":      event.EventName,
		"properties": props,
	}})
}

func (c *MixpanelCollector) SetProfile(ctx context.Context, userID string, props map[string]interface{}) error {
	return c.post(ctx, "/engage", []map[string]interface{}{{
		"$token":       c.token,
		"$distinct_id": userID,
		"$set":         props,
	}})
}

func (c *MixpanelCollector) IncrementProfile(ctx context.Context, userID, property string, by int64) error {
	return c.post(ctx, "/engage", []map[string]interface{}{{
		"$token":       c.token,
		"$distinct_id": userID,
		"$add":         map[string]int64{property: by},
	}})
}

func (c *MixpanelCollector) post(ctx context.Context, path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s payload: %w", path, err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Accept", "text/plain")
	req.SetBody(body)

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	if err := c.client.DoTimeout(req, resp, timeout); err != nil {
		return fmt.Errorf("mixpanel request %s failed: %w", path, err)
	}

	if status := resp.StatusCode(); status != fasthttp.StatusOK {
		return fmt.Errorf("mixpanel request %s returned status %d", path, status)
	}
	if string(resp.Body()) == "0" {
		return fmt.Errorf("mixpanel rejected %s payload", path)
	}
	return nil
}
