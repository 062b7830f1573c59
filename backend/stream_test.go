package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"
)

var streamScript = []string{
	"event: thinking\n",
	"data: {\"thinking\":\"I should take a screenshot\"}\n",
	"\n",
	"event: tool_use\n",
	"data: {\"id\":\"toolu_01\",\"name\":\"computer\",\"input\":{\"action\":\"screenshot\"}}\n",
	"\n",
	"data: {\"tool_id\":\"toolu_01\",\"output\":\"ok\",\"base64_image\":\"iVBOR...\"}\n",
	"\n",
	"data: {\"request\":{\"method\":\"POST\",\"url\":\"https://api.anthropic.com/v1/messages\"},\"response\":{\"status_code\":200}}\n",
	"\n",
	"data: this line is not json\n",
	"\n",
	"data: {\"type\":\"text\",\"text\":\"Done, here is the screenshot.\"}\n",
	"\n",
	"data: {\"messages\":[{\"role\":\"user\",\"content\":\"take a screenshot\"}]}\n",
	"\n",
}

// serveChunks returns a test server that writes the given chunks verbatim,
// flushing after each one, so chunk boundaries land exactly where the test
// puts them.
func serveChunks(t *testing.T, chunks []string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat/stream" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		for _, chunk := range chunks {
			if _, err := w.Write([]byte(chunk)); err != nil {
				return
			}
			flusher.Flush()
		}
	}))
}

func collectEvents(t *testing.T, serverURL string) []Event {
	t.Helper()
	client, err := NewClient(serverURL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	var events []Event
	err = client.StreamChat(context.Background(), StreamRequest{Model: "claude-sonnet-4-5-20250929"}, func(ev Event) {
		events = append(events, ev)
	})
	if err != nil {
		t.Fatalf("StreamChat: %v", err)
	}
	return events
}

// The transcript must not depend on where the network splits the byte
// stream: delivery in one chunk, line-at-a-time, and with boundaries in the
// middle of lines must all decode to the same event sequence.
func TestStreamChatChunkBoundaries(t *testing.T) {
	full := ""
	for _, part := range streamScript {
		full += part
	}

	var midSplit []string
	for i := 0; i < len(full); i += 7 {
		end := i + 7
		if end > len(full) {
			end = len(full)
		}
		midSplit = append(midSplit, full[i:end])
	}

	variants := []struct {
		name   string
		chunks []string
	}{
		{"single chunk", []string{full}},
		{"line at a time", streamScript},
		{"7 byte chunks", midSplit},
	}

	var want []Event
	for _, tt := range variants {
		server := serveChunks(t, tt.chunks)
		events := collectEvents(t, server.URL)
		server.Close()

		if want == nil {
			want = events
			// 6 well formed events; the non-JSON line is dropped.
			if len(want) != 6 {
				t.Fatalf("%s: got %d events, want 6", tt.name, len(want))
			}
			continue
		}
		if !reflect.DeepEqual(events, want) {
			t.Errorf("%s: event sequence differs from single chunk delivery\ngot:  %+v\nwant: %+v", tt.name, events, want)
		}
	}
}

func TestStreamChatCountsDecodeFailures(t *testing.T) {
	server := serveChunks(t, streamScript)
	defer server.Close()

	client, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if err := client.StreamChat(context.Background(), StreamRequest{}, func(Event) {}); err != nil {
		t.Fatalf("StreamChat: %v", err)
	}
	if got := client.DecodeFailures(); got != 1 {
		t.Errorf("DecodeFailures: got %d, want 1", got)
	}
}

func TestStreamChatNon2xxStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	err = client.StreamChat(context.Background(), StreamRequest{}, func(ev Event) {
		t.Errorf("unexpected event on failed request: %+v", ev)
	})
	if err == nil {
		t.Fatal("expected error for status 500")
	}
	if want := "status 500"; !strings.Contains(err.Error(), want) {
		t.Errorf("error %q does not mention %q", err.Error(), want)
	}
}

func TestStreamChatCancellation(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		w.Write([]byte("data: {\"type\":\"text\",\"text\":\"partial\"}\n"))
		flusher.Flush()
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	got := make(chan error, 1)
	go func() {
		got <- client.StreamChat(ctx, StreamRequest{}, func(ev Event) {
			cancel()
		})
	}()

	select {
	case err := <-got:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("StreamChat: got %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("StreamChat did not return after cancellation")
	}
}
