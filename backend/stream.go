package backend

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// EventHandler receives each decoded stream event in arrival order. Handlers
// run on the stream's reading goroutine; they must not block indefinitely.
type EventHandler func(Event)

// Screenshots arrive base64-encoded on a single data line, so lines can run
// to several megabytes.
const (
	initialScanBuffer = 64 * 1024
	maxScanBuffer     = 16 * 1024 * 1024
)

// StreamChat POSTs one turn to /api/chat/stream and decodes the event-stream
// response line by line, invoking handler for every classified event.
//
// Undecodable lines are counted, debug-visible via DecodeFailures, and
// skipped; the stream continues. A non-2xx status is fatal for the request.
// Cancelling ctx aborts the underlying read; bytes buffered but not yet
// decoded at that point are discarded. StreamChat returns nil on natural
// stream end, ctx.Err() on cancellation, and the transport error otherwise.
func (c *Client) StreamChat(ctx context.Context, req StreamRequest, handler EventHandler) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to encode stream request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat/stream", bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")
	httpReq.Header.Set("Cache-Control", "no-cache")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("chat stream request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("chat stream request failed: status %d", resp.StatusCode)
	}

	// bufio.Scanner carries partial lines across reads, so a chunk boundary
	// splitting a line mid-way is handled here, not by the decoder.
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, initialScanBuffer), maxScanBuffer)

	for scanner.Scan() {
		ev, err := DecodeLine(scanner.Text())
		if err != nil {
			c.decodeFailures.Add(1)
			continue
		}
		if ev.Kind == EventNone {
			continue
		}
		handler(ev)
	}

	if err := scanner.Err(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("chat stream read failed: %w", err)
	}
	return nil
}
