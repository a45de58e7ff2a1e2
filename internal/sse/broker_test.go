package sse

import (
	"strings"
	"testing"
	"time"
)

func recv(t *testing.T, ch chan []byte) string {
	t.Helper()
	select {
	case msg := <-ch:
		return string(msg)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return ""
	}
}

func TestPublishDocumentEvent(t *testing.T) {
	b := NewBroker(time.Hour)
	defer b.Close()

	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.PublishDocumentEvent("updated", "doc1", "/tmp/a.org")

	msg := recv(t, ch)
	if !strings.Contains(msg, "event: document.updated") {
		t.Fatalf("msg = %q", msg)
	}
	if !strings.Contains(msg, `"document_id":"doc1"`) {
		t.Fatalf("msg = %q", msg)
	}

	// First document event also triggers a metadata event.
	msg = recv(t, ch)
	if !strings.Contains(msg, "event: metadata.updated") {
		t.Fatalf("msg = %q", msg)
	}
}

func TestMetadataThrottle(t *testing.T) {
	b := NewBroker(time.Hour)
	defer b.Close()

	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.PublishDocumentEvent("updated", "doc1", "")
	b.PublishDocumentEvent("removed", "doc1", "")

	var metadataEvents int
	for i := 0; i < 3; i++ {
		select {
		case msg := <-ch:
			if strings.Contains(string(msg), "metadata.updated") {
				metadataEvents++
			}
		case <-time.After(time.Second):
		}
	}
	if metadataEvents != 1 {
		t.Fatalf("metadata events = %d, want 1 within throttle window", metadataEvents)
	}
}

func TestCloseIsIdempotentAndSafe(t *testing.T) {
	b := NewBroker(0)
	ch := b.Subscribe()

	b.Close()
	b.Close()

	if _, ok := <-ch; ok {
		t.Fatal("client channel should be closed")
	}

	// Operations after close are no-ops.
	b.PublishDocumentEvent("updated", "x", "")
	b.Unsubscribe(ch)
	if n := b.ClientCount(); n != 0 {
		t.Fatalf("clients = %d", n)
	}
}

func TestClientCount(t *testing.T) {
	b := NewBroker(0)
	defer b.Close()

	a := b.Subscribe()
	c := b.Subscribe()
	if n := b.ClientCount(); n != 2 {
		t.Fatalf("clients = %d", n)
	}
	b.Unsubscribe(a)
	b.Unsubscribe(c)
	if n := b.ClientCount(); n != 0 {
		t.Fatalf("clients = %d", n)
	}
}
