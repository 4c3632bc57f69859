package signal

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/avezina/signalhub/internal/core"
	"github.com/avezina/signalhub/internal/domain"
)

// Hub tracks live connections and the room broadcast groups they are
// subscribed to. It implements core.Transport for the gateway.
//
// Groups are pure transport-level fan-out sets; the gateway's room
// registry is the source of truth for membership and may diverge from
// them (an offer joins the registry without subscribing the group).
type Hub struct {
	mu     sync.RWMutex
	conns  map[domain.ConnectionID]core.SignalConnection
	groups map[domain.RoomID]map[domain.ConnectionID]struct{}
}

func NewHub() *Hub {
	return &Hub{
		conns:  make(map[domain.ConnectionID]core.SignalConnection),
		groups: make(map[domain.RoomID]map[domain.ConnectionID]struct{}),
	}
}

func (h *Hub) Register(id domain.ConnectionID, conn core.SignalConnection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[id] = conn
	log.Debug().Str("module", "signal.hub").Str("conn", string(id)).Msg("registered")
}

// Unregister forgets the connection and pulls it out of every group.
// It does not close the connection; the adapter that created it does.
func (h *Hub) Unregister(id domain.ConnectionID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, id)
	for room, set := range h.groups {
		delete(set, id)
		if len(set) == 0 {
			delete(h.groups, room)
		}
	}
	log.Debug().Str("module", "signal.hub").Str("conn", string(id)).Msg("unregistered")
}

func (h *Hub) JoinGroup(id domain.ConnectionID, room domain.RoomID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[id]; !ok {
		return
	}
	set, ok := h.groups[room]
	if !ok {
		set = make(map[domain.ConnectionID]struct{})
		h.groups[room] = set
	}
	set[id] = struct{}{}
}

func (h *Hub) LeaveGroup(id domain.ConnectionID, room domain.RoomID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.groups[room]
	if !ok {
		return
	}
	delete(set, id)
	if len(set) == 0 {
		delete(h.groups, room)
	}
}

func (h *Hub) Send(to domain.ConnectionID, v any) {
	frame, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal.hub").Msg("marshal outbound")
		return
	}
	h.mu.RLock()
	conn, ok := h.conns[to]
	h.mu.RUnlock()
	if !ok {
		// Target already gone: by contract a silent drop.
		log.Debug().Str("module", "signal.hub").Str("conn", string(to)).Msg("send to unknown connection")
		return
	}
	if err := conn.TrySend(frame); err != nil {
		log.Warn().Err(err).Str("module", "signal.hub").Str("conn", string(to)).Msg("send dropped")
	}
}

func (h *Hub) Broadcast(room domain.RoomID, v any, exclude domain.ConnectionID) {
	frame, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal.hub").Msg("marshal outbound")
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id := range h.groups[room] {
		if id == exclude {
			continue
		}
		conn, ok := h.conns[id]
		if !ok {
			continue
		}
		if err := conn.TrySend(frame); err != nil {
			log.Warn().Err(err).Str("module", "signal.hub").Str("conn", string(id)).
				Str("room", string(room)).Msg("broadcast dropped")
		}
	}
}
