package watcher_test

import (
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/cathywu/sumosims/internal/adapters/watcher"
)

func TestDebouncer_CoalescesEvents(t *testing.T) {
	var mu sync.Mutex
	var batches [][]string
	fired := make(chan struct{}, 1)

	d := watcher.NewDebouncer(20*time.Millisecond, func(paths []string) {
		mu.Lock()
		batches = append(batches, paths)
		mu.Unlock()
		fired <- struct{}{}
	})

	// Repeated events for the same path collapse into one entry.
	d.Add("a.nod.xml")
	d.Add("a.nod.xml")
	d.Add("a.edg.xml")

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("debouncer never fired")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(batches) != 1 {
		t.Fatalf("expected one batch, got %d", len(batches))
	}
	got := append([]string(nil), batches[0]...)
	sort.Strings(got)
	want := []string{"a.edg.xml", "a.nod.xml"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("expected batch %v, got %v", want, got)
	}
}

func TestDebouncer_Flush(t *testing.T) {
	var mu sync.Mutex
	var got []string

	d := watcher.NewDebouncer(time.Hour, func(paths []string) {
		mu.Lock()
		got = append(got, paths...)
		mu.Unlock()
	})

	d.Add("a.nod.xml")
	d.Flush()

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 || got[0] != "a.nod.xml" {
		t.Errorf("expected flushed path a.nod.xml, got %v", got)
	}
}

func TestDebouncer_FlushEmpty(t *testing.T) {
	called := false
	d := watcher.NewDebouncer(time.Hour, func([]string) {
		called = true
	})

	d.Flush()

	if called {
		t.Error("expected no callback for an empty flush")
	}
}
