package app

import (
	"encoding/json"

	"github.com/avezina/signalhub/internal/domain"
)

// Every message, inbound and outbound, is a flat JSON object carrying
// a "type" kind tag next to its kind-specific fields. SDP and ICE
// blobs are opaque: they ride through as json.RawMessage and are never
// inspected, restructured or renamed.

const (
	kindJoinRoom     = "join-room"
	kindLeaveRoom    = "leave-room"
	kindOffer        = "offer"
	kindAnswer       = "answer"
	kindIceCandidate = "ice-candidate"

	kindExistingUsers = "existing-users"
	kindUserJoined    = "user-joined"
	kindUserLeft      = "user-left"
)

type joinRoomPayload struct {
	RoomID string `json:"roomId"`
	UserID string `json:"userId"`
}

type leaveRoomPayload struct {
	RoomID string `json:"roomId"`
	UserID string `json:"userId"`
}

type offerPayload struct {
	TargetConnectionID string          `json:"targetConnectionId"`
	Offer              json.RawMessage `json:"offer"`
	SenderConnectionID string          `json:"senderConnectionId"`
	RoomName           string          `json:"roomName"`
	UserName           string          `json:"userName"`
}

type answerPayload struct {
	SenderConnectionID string          `json:"senderConnectionId"`
	Answer             json.RawMessage `json:"answer"`
	TargetConnectionID string          `json:"targetConnectionId"`
	RoomName           string          `json:"roomName"`
}

type candidatePayload struct {
	TargetConnectionID string          `json:"targetConnectionId"`
	SenderConnectionID string          `json:"senderConnectionId"`
	Candidate          json.RawMessage `json:"candidate"`
}

type existingUsersMsg struct {
	Type  string          `json:"type"`
	Users []domain.Member `json:"users"`
}

type userJoinedMsg struct {
	Type         string              `json:"type"`
	ConnectionID domain.ConnectionID `json:"connectionId"`
	UserID       string              `json:"userId"`
}

type userLeftMsg struct {
	Type         string              `json:"type"`
	ConnectionID domain.ConnectionID `json:"connectionId"`
	UserID       string              `json:"userId"`
}

type offerMsg struct {
	Type               string          `json:"type"`
	Offer              json.RawMessage `json:"offer"`
	SenderConnectionID string          `json:"senderConnectionId"`
	SenderUserName     string          `json:"senderUserName"`
}

type answerMsg struct {
	Type               string              `json:"type"`
	Answer             json.RawMessage     `json:"answer"`
	SenderConnectionID domain.ConnectionID `json:"senderConnectionId"`
	RoomName           string              `json:"roomName"`
}

type candidateMsg struct {
	Type               string          `json:"type"`
	Candidate          json.RawMessage `json:"candidate"`
	SenderConnectionID string          `json:"senderConnectionId"`
}
