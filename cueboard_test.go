package cueboard

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stagecue/cueboard/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNew_Defaults(t *testing.T) {
	cb, err := New()
	if err != nil {
		t.Fatalf("New() = %v, want nil", err)
	}

	if cb.Port() != 8080 {
		t.Errorf("Port() = %v, want 8080", cb.Port())
	}
	if cb.WaitTimeout() != 25*time.Second {
		t.Errorf("WaitTimeout() = %v, want 25s", cb.WaitTimeout())
	}
	if cb.Title() != "" {
		t.Errorf("Title() = %q, want empty (server applies the default)", cb.Title())
	}
}

func TestStart_ContextAlreadyCancelled(t *testing.T) {
	cb, err := New(WithLogger(testLogger()))
	if err != nil {
		t.Fatalf("New() = %v, want nil", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// must return promptly without binding the port
	if err := cb.Start(ctx); err != nil {
		t.Errorf("Start(cancelled ctx) = %v, want nil", err)
	}
}

func TestConsumeChanges(t *testing.T) {
	changes := make(chan Change, 10)
	cb, err := New(
		WithLogger(testLogger()),
		WithChangeCallback(func(c Change) { changes <- c }),
	)
	if err != nil {
		t.Fatalf("New() = %v, want nil", err)
	}

	st := store.NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		cb.consumeChanges(ctx, st)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	if err := st.SetLetter("V"); err != nil {
		t.Fatalf("SetLetter(V) = %v, want nil", err)
	}

	select {
	case c := <-changes:
		if c.Signal != "V" {
			t.Errorf("Change.Signal = %q, want V", c.Signal)
		}
		if c.Revision != 1 {
			t.Errorf("Change.Revision = %v, want 1", c.Revision)
		}
		if c.At.IsZero() {
			t.Error("Change.At is zero")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("callback was not invoked after mutation")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("consumeChanges did not stop on context cancellation")
	}
}

func TestConsumeChanges_CallbackOrder(t *testing.T) {
	var order []int
	seen := make(chan struct{}, 1)
	cb, err := New(
		WithLogger(testLogger()),
		WithChangeCallback(func(Change) { order = append(order, 1) }),
		WithChangeCallback(func(Change) { order = append(order, 2); seen <- struct{}{} }),
	)
	if err != nil {
		t.Fatalf("New() = %v, want nil", err)
	}

	st := store.NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go cb.consumeChanges(ctx, st)

	time.Sleep(20 * time.Millisecond)
	if err := st.SetLetter("B"); err != nil {
		t.Fatalf("SetLetter(B) = %v, want nil", err)
	}

	select {
	case <-seen:
	case <-time.After(2 * time.Second):
		t.Fatal("callbacks were not invoked")
	}

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("callback order = %v, want [1 2]", order)
	}
}

func TestInvokeCallbackSafe_Panic(t *testing.T) {
	called := false

	// a panicking callback must be recovered, not propagated
	invokeCallbackSafe(func(Change) {
		called = true
		panic("callback exploded")
	}, Change{Signal: "V", Revision: 1}, testLogger())

	if !called {
		t.Error("callback was not invoked")
	}
}
