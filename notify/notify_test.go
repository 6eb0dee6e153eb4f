package notify

import "testing"

func TestEmitOrderAndUnsubscribe(t *testing.T) {
	r := NewRegistry[int]("test")
	var got []string

	unsubA := r.Subscribe(func(v int) { got = append(got, "a") })
	r.Subscribe(func(v int) { got = append(got, "b") })

	r.Emit(1)
	unsubA()
	unsubA() // second call is a no-op
	r.Emit(2)

	want := []string{"a", "b", "b"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestPanickingListenerDoesNotStopOthers(t *testing.T) {
	r := NewRegistry[string]("test")
	var seen []string

	r.Subscribe(func(v string) { seen = append(seen, "first:"+v) })
	r.Subscribe(func(v string) { panic("boom") })
	r.Subscribe(func(v string) { seen = append(seen, "third:"+v) })

	failed := r.Emit("x")
	if failed != 1 {
		t.Errorf("failed = %d, want 1", failed)
	}
	if len(seen) != 2 || seen[0] != "first:x" || seen[1] != "third:x" {
		t.Errorf("seen = %v", seen)
	}
}

func TestNilListenerIgnored(t *testing.T) {
	r := NewRegistry[int]("test")
	unsub := r.Subscribe(nil)
	unsub()
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
}

func TestUnsubscribeDuringEmit(t *testing.T) {
	r := NewRegistry[int]("test")
	calls := 0
	var unsub func()
	unsub = r.Subscribe(func(int) {
		calls++
		unsub()
	})
	r.Emit(1)
	r.Emit(2)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
