package app

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/avezina/signalhub/internal/core"
	"github.com/avezina/signalhub/internal/domain"
)

// Gateway is the signaling relay between browser peers. It owns the
// room registry, dispatches inbound messages by kind and decides who
// receives what; the transport does the actual delivery.
//
// Routing is keyed entirely on client-supplied connection and room
// ids. SDP/ICE payloads pass through untouched.
type Gateway struct {
	rooms *Rooms
	tr    core.Transport
	joins *JoinLimiter
}

func NewGateway(rooms *Rooms, tr core.Transport, joins *JoinLimiter) *Gateway {
	return &Gateway{rooms: rooms, tr: tr, joins: joins}
}

func (g *Gateway) OnConnect(id domain.ConnectionID) {
	log.Info().Str("module", "app.gateway").Str("conn", string(id)).Msg("client connected")
}

// OnDisconnect is the only cleanup path: the transport must invoke it
// for every connection that goes away, clean close or not.
func (g *Gateway) OnDisconnect(id domain.ConnectionID) {
	log.Info().Str("module", "app.gateway").Str("conn", string(id)).Msg("client disconnected")
	g.rooms.RemoveConnection(id)
	if g.joins != nil {
		g.joins.Forget(id)
	}
}

// HandleMessage dispatches one inbound message. Each invocation is
// independent: a malformed payload or a panicking handler is logged
// and dropped without touching any other connection's session.
func (g *Gateway) HandleMessage(id domain.ConnectionID, data []byte) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Str("module", "app.gateway").Str("conn", string(id)).
				Any("panic", rec).Msg("handler panicked")
		}
	}()

	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "app.gateway").Str("conn", string(id)).Msg("bad json")
		return
	}

	switch env.Type {
	case kindJoinRoom:
		g.handleJoinRoom(id, data)
	case kindLeaveRoom:
		g.handleLeaveRoom(id, data)
	case kindOffer:
		g.handleOffer(id, data)
	case kindAnswer:
		g.handleAnswer(id, data)
	case kindIceCandidate:
		g.handleIceCandidate(id, data)
	default:
		log.Warn().Str("module", "app.gateway").Str("type", env.Type).Msg("unknown signal")
	}
}

func (g *Gateway) handleJoinRoom(id domain.ConnectionID, data []byte) {
	var p joinRoomPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "app.gateway").Msg("bad join-room payload")
		return
	}
	if g.joins != nil && !g.joins.Allow(id) {
		log.Warn().Str("module", "app.gateway").Str("conn", string(id)).
			Str("room", p.RoomID).Msg("join rate limited")
		return
	}

	room := domain.RoomID(p.RoomID)
	g.tr.JoinGroup(id, room)
	members := g.rooms.Join(room, id, p.UserID)

	log.Info().Str("module", "app.gateway").Str("conn", string(id)).
		Str("user", p.UserID).Str("room", p.RoomID).Msg("joined room")

	// Everyone already there sees the full roster; the newcomer gets
	// the roster minus itself.
	g.tr.Broadcast(room, existingUsersMsg{Type: kindExistingUsers, Users: members}, id)
	g.tr.Send(id, existingUsersMsg{Type: kindExistingUsers, Users: without(members, id)})
	g.tr.Broadcast(room, userJoinedMsg{
		Type:         kindUserJoined,
		ConnectionID: id,
		UserID:       p.UserID,
	}, id)
}

func (g *Gateway) handleLeaveRoom(id domain.ConnectionID, data []byte) {
	var p leaveRoomPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "app.gateway").Msg("bad leave-room payload")
		return
	}

	room := domain.RoomID(p.RoomID)
	g.tr.LeaveGroup(id, room)
	g.rooms.Leave(room, id)

	log.Info().Str("module", "app.gateway").Str("conn", string(id)).
		Str("user", p.UserID).Str("room", p.RoomID).Msg("left room")

	g.tr.Broadcast(room, userLeftMsg{
		Type:         kindUserLeft,
		ConnectionID: id,
		UserID:       p.UserID,
	}, id)
}

func (g *Gateway) handleOffer(id domain.ConnectionID, data []byte) {
	var p offerPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "app.gateway").Msg("bad offer payload")
		return
	}

	// An offer into a room is an implicit join: membership is ensured
	// under the sender's real connection id even when no join-room was
	// ever sent for that room.
	g.rooms.Join(domain.RoomID(p.RoomName), id, p.UserName)

	log.Info().Str("module", "app.gateway").Str("from", p.SenderConnectionID).
		Str("to", p.TargetConnectionID).Str("room", p.RoomName).Msg("relaying offer")

	g.tr.Send(domain.ConnectionID(p.TargetConnectionID), offerMsg{
		Type:               kindOffer,
		Offer:              p.Offer,
		SenderConnectionID: p.SenderConnectionID,
		SenderUserName:     p.UserName,
	})
}

func (g *Gateway) handleAnswer(id domain.ConnectionID, data []byte) {
	var p answerPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "app.gateway").Msg("bad answer payload")
		return
	}

	log.Info().Str("module", "app.gateway").Str("from", string(id)).
		Str("to", p.TargetConnectionID).Str("room", p.RoomName).Msg("relaying answer")

	// The outbound sender id is the connection the answer actually
	// arrived on, not whatever the payload claims.
	g.tr.Send(domain.ConnectionID(p.TargetConnectionID), answerMsg{
		Type:               kindAnswer,
		Answer:             p.Answer,
		SenderConnectionID: id,
		RoomName:           p.RoomName,
	})
}

func (g *Gateway) handleIceCandidate(id domain.ConnectionID, data []byte) {
	var p candidatePayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "app.gateway").Msg("bad ice-candidate payload")
		return
	}

	log.Debug().Str("module", "app.gateway").Str("from", p.SenderConnectionID).
		Str("to", p.TargetConnectionID).Msg("relaying ice candidate")

	g.tr.Send(domain.ConnectionID(p.TargetConnectionID), candidateMsg{
		Type:               kindIceCandidate,
		Candidate:          p.Candidate,
		SenderConnectionID: p.SenderConnectionID,
	})
}

func without(members []domain.Member, id domain.ConnectionID) []domain.Member {
	out := make([]domain.Member, 0, len(members))
	for _, m := range members {
		if m.ConnectionID != id {
			out = append(out, m)
		}
	}
	return out
}
