package signal

import (
	"encoding/json"
	"testing"

	"github.com/avezina/signalhub/internal/core"
)

type fakeConn struct {
	frames []core.Frame
	fail   error
}

func (f *fakeConn) TrySend(frame core.Frame) error {
	if f.fail != nil {
		return f.fail
	}
	f.frames = append(f.frames, frame)
	return nil
}

func (f *fakeConn) Close() {}

func decodeTypes(t *testing.T, frames []core.Frame) []string {
	t.Helper()
	out := make([]string, 0, len(frames))
	for _, frame := range frames {
		var env struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(frame, &env); err != nil {
			t.Fatalf("frame is not JSON: %v", err)
		}
		out = append(out, env.Type)
	}
	return out
}

func TestSendMarshalsToRegisteredConnection(t *testing.T) {
	h := NewHub()
	c := &fakeConn{}
	h.Register("c1", c)

	h.Send("c1", map[string]string{"type": "hello"})

	if got := decodeTypes(t, c.frames); len(got) != 1 || got[0] != "hello" {
		t.Fatalf("frames = %v", got)
	}
}

func TestSendToUnknownConnectionIsNoOp(t *testing.T) {
	h := NewHub()
	// Must not panic, must not deliver anywhere.
	h.Send("ghost", map[string]string{"type": "hello"})
}

func TestBroadcastReachesGroupExceptExcluded(t *testing.T) {
	h := NewHub()
	a, b, c := &fakeConn{}, &fakeConn{}, &fakeConn{}
	h.Register("a", a)
	h.Register("b", b)
	h.Register("c", c)
	h.JoinGroup("a", "lobby")
	h.JoinGroup("b", "lobby")
	// c never joins the group.

	h.Broadcast("lobby", map[string]string{"type": "ping"}, "a")

	if len(a.frames) != 0 {
		t.Fatalf("excluded connection received %d frames", len(a.frames))
	}
	if len(b.frames) != 1 {
		t.Fatalf("group member received %d frames; want 1", len(b.frames))
	}
	if len(c.frames) != 0 {
		t.Fatalf("non-member received %d frames", len(c.frames))
	}
}

func TestUnregisterRemovesFromEveryGroup(t *testing.T) {
	h := NewHub()
	a, b := &fakeConn{}, &fakeConn{}
	h.Register("a", a)
	h.Register("b", b)
	h.JoinGroup("a", "r1")
	h.JoinGroup("a", "r2")
	h.JoinGroup("b", "r1")

	h.Unregister("a")

	h.Broadcast("r1", map[string]string{"type": "x"}, "")
	h.Broadcast("r2", map[string]string{"type": "x"}, "")

	if len(a.frames) != 0 {
		t.Fatalf("unregistered connection still received frames")
	}
	if len(b.frames) != 1 {
		t.Fatalf("remaining member received %d frames; want 1", len(b.frames))
	}
}

func TestJoinGroupRequiresRegisteredConnection(t *testing.T) {
	h := NewHub()
	h.JoinGroup("ghost", "lobby")

	b := &fakeConn{}
	h.Register("b", b)
	h.JoinGroup("b", "lobby")
	h.Broadcast("lobby", map[string]string{"type": "x"}, "")

	if len(b.frames) != 1 {
		t.Fatalf("member received %d frames; want 1", len(b.frames))
	}
}

func TestLeaveGroupStopsBroadcasts(t *testing.T) {
	h := NewHub()
	a, b := &fakeConn{}, &fakeConn{}
	h.Register("a", a)
	h.Register("b", b)
	h.JoinGroup("a", "lobby")
	h.JoinGroup("b", "lobby")

	h.LeaveGroup("a", "lobby")
	h.Broadcast("lobby", map[string]string{"type": "x"}, "")

	if len(a.frames) != 0 {
		t.Fatalf("departed member received %d frames", len(a.frames))
	}
	if len(b.frames) != 1 {
		t.Fatalf("remaining member received %d frames; want 1", len(b.frames))
	}
}

func TestBroadcastSurvivesBackpressuredMember(t *testing.T) {
	h := NewHub()
	slow := &fakeConn{fail: ErrBackpressure}
	ok := &fakeConn{}
	h.Register("slow", slow)
	h.Register("ok", ok)
	h.JoinGroup("slow", "lobby")
	h.JoinGroup("ok", "lobby")

	h.Broadcast("lobby", map[string]string{"type": "x"}, "")

	if len(ok.frames) != 1 {
		t.Fatalf("healthy member received %d frames; want 1", len(ok.frames))
	}
}
