package channel

import (
	"testing"
)

func TestIsoTake(t *testing.T) {
	iso := Wrap("payload")

	if !iso.Valid() {
		t.Fatal("freshly wrapped value reported invalid")
	}

	if got := iso.Take(); got != "payload" {
		t.Fatalf("expected %q, got %q", "payload", got)
	}

	if iso.Valid() {
		t.Fatal("wrapper still valid after take")
	}
}

func TestIsoDoubleTakePanics(t *testing.T) {
	iso := Wrap(1)
	iso.Take()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on second take")
		}
	}()

	iso.Take()
}

func TestSendRecvIso(t *testing.T) {
	ch, err := New[string](2)

	if err != nil {
		t.Fatal(err)
	}

	defer ch.Close()

	iso := Wrap("moved")
	ch.SendIso(&iso)

	if iso.Valid() {
		t.Fatal("wrapper still valid after send")
	}

	got := ch.RecvIso()

	if got.Value() != "moved" {
		t.Fatalf("expected %q, got %q", "moved", got.Value())
	}
}

// A failed non-blocking send must leave the wrapped value intact.
func TestTrySendIsoKeepsValueOnFailure(t *testing.T) {
	ch, err := New[int](1)

	if err != nil {
		t.Fatal(err)
	}

	defer ch.Close()

	ch.Send(1)

	iso := Wrap(2)

	if ch.TrySendIso(&iso) {
		t.Fatal("TrySendIso succeeded on a full channel")
	}

	if !iso.Valid() {
		t.Fatal("failed TrySendIso consumed the value")
	}

	if got := ch.Recv(); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}

	if !ch.TrySendIso(&iso) {
		t.Fatal("TrySendIso failed after a slot was freed")
	}

	if iso.Valid() {
		t.Fatal("successful TrySendIso left the wrapper valid")
	}

	if got := ch.Recv(); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
}
