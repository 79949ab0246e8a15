package websocket

import (
	"strings"
	"testing"
	"time"

	"deposit-defender-be/pkg/store"
)

type hubTestLogger struct{}

func (hubTestLogger) Debug(module, message string, details map[string]interface{}) {}
func (hubTestLogger) Info(module, message string, details map[string]interface{})  {}
func (hubTestLogger) Warn(module, message string, details map[string]interface{})  {}
func (hubTestLogger) Error(module, message string, details map[string]interface{}) {}
func (hubTestLogger) Sync() error                                                  { return nil }

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func newWatcher(t *testing.T, h *Hub, caseId string, buffer int) *Client {
	t.Helper()
	client := &Client{Hub: h, CaseId: caseId, Send: make(chan []byte, buffer)}
	h.register <- client
	waitFor(t, "registration", func() bool {
		h.mu.RLock()
		defer h.mu.RUnlock()
		return len(h.clients[caseId]) > 0
	})
	return client
}

func TestHubDeliversProgressToWatchers(t *testing.T) {
	h := NewHub(nil, hubTestLogger{})
	go h.Run()

	client := newWatcher(t, h, "case-1", 4)

	h.PublishProgress("case-1", store.DownloadState{Loading: true, Progress: 40})

	select {
	case msg := <-client.Send:
		if !strings.Contains(string(msg), `"progress":40`) {
			t.Errorf("unexpected frame %s", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watcher never received the progress frame")
	}
}

func TestHubDropsSlowWatcherWithoutCrashing(t *testing.T) {
	h := NewHub(nil, hubTestLogger{})
	go h.Run()

	slow := newWatcher(t, h, "case-2", 0)

	h.PublishProgress("case-2", store.DownloadState{Loading: true, Progress: 10})

	// The hub removes the watcher and closes its channel exactly once.
	waitFor(t, "watcher removal", func() bool {
		h.mu.RLock()
		defer h.mu.RUnlock()
		_, ok := h.clients["case-2"]
		return !ok
	})

	select {
	case _, ok := <-slow.Send:
		if ok {
			t.Fatal("expected a closed send channel, got a frame")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("send channel was never closed")
	}

	// Later publishes for the same case must keep working.
	h.PublishProgress("case-2", store.DownloadState{Loading: false, Progress: 100})

	healthy := newWatcher(t, h, "case-2", 4)
	h.PublishProgress("case-2", store.DownloadState{Loading: false, Progress: 100})
	select {
	case <-healthy.Send:
	case <-time.After(2 * time.Second):
		t.Fatal("hub stopped delivering after dropping a slow watcher")
	}
}
