package domain

// RoomID names a room. Clients address it as "roomId" on join/leave
// and as "roomName" on offer/answer; both live in the same flat key
// space.
type RoomID string
