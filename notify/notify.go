// Package notify dispatches best-effort webhook notifications. Delivery
// failures are logged and swallowed; they never affect the primary request.
package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"protectedstorage/constants"
	"protectedstorage/logger"
	"protectedstorage/metrics"
	"protectedstorage/settings"
)

// Origin describes where the triggering request came from. It is appended
// to every notification text.
type Origin struct {
	IP  string
	URL string
}

// Notifier sends Slack-compatible webhook messages to the URLs configured
// under SlackWebhookUrls.
type Notifier struct {
	settings settings.Provider
	client   *http.Client
}

func New(provider settings.Provider) *Notifier {
	return &Notifier{
		settings: provider,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type slackPayload struct {
	Text string `json:"text"`
}

// Notify posts the message to every configured webhook URL. The URL list is
// read per call, so configuration changes apply without a restart. Each send
// is independent; a failure on one URL does not affect the others, and no
// error ever reaches the caller. With no URLs configured this is a no-op.
func (n *Notifier) Notify(message string, origin Origin) {
	raw, ok := n.settings.Get(constants.SettingWebhookURLs)
	if !ok || strings.TrimSpace(raw) == "" {
		return
	}

	body, err := json.Marshal(slackPayload{
		Text: fmt.Sprintf("%s IP=%s URL=%s", message, origin.IP, origin.URL),
	})
	if err != nil {
		logger.Get().Error().Err(err).Msg("Could not marshal notification payload")
		return
	}

	// One independent send per endpoint; all are awaited, none can fail the
	// caller.
	var wg sync.WaitGroup
	for _, rawURL := range strings.Split(raw, ",") {
		url := strings.TrimSpace(rawURL)
		if url == "" {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			n.send(url, body)
		}()
	}
	wg.Wait()
}

// NotifyAsync dispatches Notify on its own goroutine, for trigger points
// that must not block the response.
func (n *Notifier) NotifyAsync(message string, origin Origin) {
	go n.Notify(message, origin)
}

func (n *Notifier) send(url string, body []byte) {
	resp, err := n.client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		logger.Get().Error().Err(err).Str("url", url).Msg("Could not send notification")
		metrics.ObserveNotification("error")
		return
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Get().Error().
			Int("status", resp.StatusCode).
			Str("url", url).
			Msg("Notification endpoint returned an error")
		metrics.ObserveNotification("error")
		return
	}

	metrics.ObserveNotification("ok")
}
