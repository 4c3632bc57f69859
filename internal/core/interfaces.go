package core

import "github.com/avezina/signalhub/internal/domain"

// Frame is a marshaled outbound signaling message.
type Frame []byte

// SignalConnection abstracts one client's messaging endpoint.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}

// Transport is the messaging layer the gateway relays through. All
// deliveries are fire-and-forget: an unknown target or a slow receiver
// silently drops the message, the gateway never waits or retries.
type Transport interface {
	// Send unicasts to one connection. No-op if the id is unknown.
	Send(to domain.ConnectionID, v any)
	// Broadcast multicasts to every connection subscribed to the
	// room's group, skipping exclude when non-empty.
	Broadcast(room domain.RoomID, v any, exclude domain.ConnectionID)
	// JoinGroup and LeaveGroup manage which broadcast groups a
	// connection belongs to.
	JoinGroup(id domain.ConnectionID, room domain.RoomID)
	LeaveGroup(id domain.ConnectionID, room domain.RoomID)
}
