package xapi

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	log "github.com/sirupsen/logrus"
)

// Add Prometheus metrics
var (
	streamConnectionAttempts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "disasterwatch_stream_connection_attempts_total",
		Help: "The total number of connection attempts to the filtered stream",
	})

	streamConnectionErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "disasterwatch_stream_connection_errors_total",
		Help: "The total number of filtered stream connection errors encountered",
	})

	streamCurrentConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "disasterwatch_stream_current_connections",
		Help: "The current number of active filtered stream connections",
	})

	streamMessagesReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "disasterwatch_stream_messages_received_total",
		Help: "The total number of messages delivered by the filtered stream",
	})
)

const (
	streamPath = "/tweets/search/stream"
	rulesPath  = "/tweets/search/stream/rules"

	streamReadBufferSize = 1024 * 1024 // 1MB
	streamInitialBackoff = 1 * time.Second
	streamMaxBackoff     = 30 * time.Second
)

// Rules fetches the current server-side stream rules.
func (c *Client) Rules(ctx context.Context) (*RulesResponse, error) {
	var out RulesResponse
	if err := c.getJSON(ctx, rulesPath, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type addRule struct {
	Value string `json:"value"`
	Tag   string `json:"tag,omitempty"`
}

type deleteRules struct {
	IDs []string `json:"ids"`
}

type ruleChanges struct {
	Add    []addRule    `json:"add,omitempty"`
	Delete *deleteRules `json:"delete,omitempty"`
}

// AddRules registers one rule per value.
func (c *Client) AddRules(ctx context.Context, values []string) error {
	if len(values) == 0 {
		return nil
	}

	changes := ruleChanges{}
	for _, value := range values {
		changes.Add = append(changes.Add, addRule{Value: value})
	}
	return c.postRules(ctx, changes)
}

// DeleteRules removes the rules with the given ids. A nil or empty id list
// is a no-op.
func (c *Client) DeleteRules(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return c.postRules(ctx, ruleChanges{Delete: &deleteRules{IDs: ids}})
}

func (c *Client) postRules(ctx context.Context, changes ruleChanges) error {
	body, err := json.Marshal(changes)
	if err != nil {
		return err
	}

	resp, err := c.do(ctx, http.MethodPost, rulesPath, nil, bytes.NewReader(body))
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// Stream is a live filtered stream connection. Messages are delivered on
// the Messages channel until Close is called or the connection becomes
// terminal; the channel is closed when the reader shuts down.
type Stream struct {
	messages  chan *StreamMessage
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// Messages returns the delivery channel.
func (s *Stream) Messages() <-chan *StreamMessage {
	return s.messages
}

// Close terminates the connection. Safe to call more than once.
func (s *Stream) Close() {
	s.closeOnce.Do(s.cancel)
}

// OpenStream connects to the filtered stream with the standard field set.
// The connection is maintained in the background with exponential backoff;
// an HTTP 429 (stream limit reached) is terminal and suppresses
// reconnection.
func (c *Client) OpenStream(ctx context.Context) (*Stream, error) {
	ctx, cancel := context.WithCancel(ctx)
	s := &Stream{
		messages: make(chan *StreamMessage),
		cancel:   cancel,
	}

	go c.streamLoop(ctx, s)

	return s, nil
}

func (c *Client) streamLoop(ctx context.Context, s *Stream) {
	defer close(s.messages)

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = streamInitialBackoff
	bo.MaxInterval = streamMaxBackoff
	bo.MaxElapsedTime = 0 // Keep reconnecting until cancelled

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		streamConnectionAttempts.Inc()

		resp, err := c.dialStream(ctx)
		if err != nil {
			streamConnectionErrors.Inc()

			var apiErr *APIError
			if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
				// Stream already at its connection limit. Do not retry.
				log.Errorf("Filtered stream refused with status 429, giving up: %s", apiErr)
				return
			}
			if ctx.Err() != nil {
				return
			}

			wait := bo.NextBackOff()
			log.Errorf("Error connecting to filtered stream (retrying in %s): %s", wait, err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(wait):
			}
			continue
		}

		bo.Reset()
		streamCurrentConnections.Inc()
		c.readStream(ctx, resp.Body, s.messages)
		streamCurrentConnections.Dec()
		resp.Body.Close()
	}
}

func (c *Client) dialStream(ctx context.Context) (*http.Response, error) {
	params := url.Values{}
	params.Set("tweet.fields", tweetFields)
	params.Set("user.fields", userFields)
	params.Set("expansions", expansions)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+streamPath+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.bearer)

	// The stream is a long-lived response body, so it bypasses the
	// request-scoped timeout on the regular client.
	resp, err := c.streamClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(apiErr)
		resp.Body.Close()
		return nil, apiErr
	}

	return resp, nil
}

// readStream decodes newline-delimited envelopes until the connection drops
// or the context is cancelled.
func (c *Client) readStream(ctx context.Context, body io.Reader, out chan<- *StreamMessage) {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 64*1024), streamReadBufferSize)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			// Keep-alive heartbeat
			continue
		}

		var msg StreamMessage
		if err := json.Unmarshal(line, &msg); err != nil {
			log.Warnf("Failed to unmarshal stream message: %s", err)
			continue
		}

		streamMessagesReceived.Inc()

		select {
		case <-ctx.Done():
			return
		case out <- &msg:
		}
	}

	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		streamConnectionErrors.Inc()
		log.Errorf("Filtered stream read failed: %s", err)
	}
}
