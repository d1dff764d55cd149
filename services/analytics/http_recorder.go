package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"

	"streamscout/models"
)

const defaultQueueSize = 256

// HTTPRecorder forwards events as JSON POSTs from a bounded set of workers.
// Record only enqueues; a full queue drops the event.
type HTTPRecorder struct {
	endpoint string
	client   *http.Client
	queue    chan models.LaunchEvent
	workers  *pool.Pool

	mu     sync.RWMutex
	closed bool
}

// NewHTTPRecorder starts workers goroutines posting to endpoint.
func NewHTTPRecorder(endpoint string, client *http.Client, workers int) *HTTPRecorder {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	if workers <= 0 {
		workers = 1
	}
	r := &HTTPRecorder{
		endpoint: endpoint,
		client:   client,
		queue:    make(chan models.LaunchEvent, defaultQueueSize),
		workers:  pool.New().WithMaxGoroutines(workers),
	}
	for i := 0; i < workers; i++ {
		r.workers.Go(r.drain)
	}
	return r
}

func (r *HTTPRecorder) Record(e models.LaunchEvent) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return
	}
	select {
	case r.queue <- e:
	default:
		log.Printf("[analytics] queue full, dropping event for attempt %s", e.AttemptID)
	}
}

func (r *HTTPRecorder) drain() {
	for e := range r.queue {
		if err := r.post(e); err != nil {
			log.Printf("[analytics] forward failed for attempt %s: %v", e.AttemptID, err)
		}
	}
}

func (r *HTTPRecorder) post(e models.LaunchEvent) error {
	body, err := json.Marshal(e)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), r.client.Timeout+time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("analytics endpoint returned HTTP %d", resp.StatusCode)
	}
	return nil
}

// Close stops accepting events and waits for queued ones to be sent.
func (r *HTTPRecorder) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	close(r.queue)
	r.mu.Unlock()
	r.workers.Wait()
}
