package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/avezina/signalhub/internal/domain"
)

// Rooms is the in-memory room membership registry. It is owned by the
// gateway and is the only shared mutable state in the server; every
// method takes the lock, callers only ever see copies.
//
// Member order is insertion order and is preserved: the membership
// sequence is sent to clients as-is for rendering.
type Rooms struct {
	mu    sync.RWMutex
	rooms map[domain.RoomID][]domain.Member
}

func NewRooms() *Rooms {
	return &Rooms{rooms: make(map[domain.RoomID][]domain.Member)}
}

// Join records membership and returns the room's full member sequence
// including the caller. Joining a room the connection is already in
// updates the existing record in place (keeping its position) instead
// of appending a duplicate, so an offer-after-join stays a single
// record.
func (r *Rooms) Join(room domain.RoomID, id domain.ConnectionID, userName string) []domain.Member {
	r.mu.Lock()
	defer r.mu.Unlock()

	members := r.rooms[room]
	found := false
	for i := range members {
		if members[i].ConnectionID == id {
			members[i].UserName = userName
			found = true
			break
		}
	}
	if !found {
		members = append(members, domain.Member{ConnectionID: id, UserName: userName})
		r.rooms[room] = members
	}

	log.Debug().Str("module", "app.rooms").Str("room", string(room)).
		Str("conn", string(id)).Int("members", len(members)).Msg("join")
	return snapshot(members)
}

// Leave removes the connection's record from the room and deletes the
// room once its member list is empty. Unknown room or member is a
// silent no-op.
func (r *Rooms) Leave(room domain.RoomID, id domain.ConnectionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeLocked(room, id)
}

// RemoveConnection drops the connection from every room it appears in.
// This is the disconnect cleanup path.
func (r *Rooms) RemoveConnection(id domain.ConnectionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for room := range r.rooms {
		r.removeLocked(room, id)
	}
}

// Members returns an insertion-ordered snapshot, empty for an absent
// room.
func (r *Rooms) Members(room domain.RoomID) []domain.Member {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return snapshot(r.rooms[room])
}

// RoomInfo is a read-only view for the rooms listing endpoint.
type RoomInfo struct {
	RoomID      domain.RoomID `json:"roomId"`
	MemberCount int           `json:"memberCount"`
}

func (r *Rooms) List() []RoomInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]RoomInfo, 0, len(r.rooms))
	for room, members := range r.rooms {
		out = append(out, RoomInfo{RoomID: room, MemberCount: len(members)})
	}
	return out
}

func (r *Rooms) removeLocked(room domain.RoomID, id domain.ConnectionID) {
	members, ok := r.rooms[room]
	if !ok {
		return
	}
	kept := members[:0]
	for _, m := range members {
		if m.ConnectionID != id {
			kept = append(kept, m)
		}
	}
	if len(kept) == len(members) {
		return
	}
	if len(kept) == 0 {
		// Empty rooms do not exist: dropped eagerly, never kept
		// around with a zero-length list.
		delete(r.rooms, room)
		log.Debug().Str("module", "app.rooms").Str("room", string(room)).Msg("room deleted")
		return
	}
	r.rooms[room] = kept
	log.Debug().Str("module", "app.rooms").Str("room", string(room)).
		Str("conn", string(id)).Int("members", len(kept)).Msg("member removed")
}

func snapshot(members []domain.Member) []domain.Member {
	out := make([]domain.Member, len(members))
	copy(out, members)
	return out
}
