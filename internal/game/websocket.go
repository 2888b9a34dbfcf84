package game

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/sketchwire/sketchwire/internal"
	"github.com/sketchwire/sketchwire/internal/utils"
)

// =============================================================================
// WEBSOCKET CONNECTION HANDLING
// =============================================================================

const (
	// Inbound message budget per connection. Messages over the limit are
	// dropped; a client flooding the socket cannot starve the room.
	inboundRate  = rate.Limit(30)
	inboundBurst = 60
)

type Handler struct {
	coordinator *Coordinator
	upgrader    websocket.Upgrader
}

func NewHandler(coordinator *Coordinator) *Handler {
	return &Handler{
		coordinator: coordinator,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleWebSocket upgrades the connection and starts the read loop. A
// connection is one participant; it attaches to a room via create_room or
// join_room and stays attached until it closes.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[HandleWebSocket] upgrade failed: %v", err)
		return
	}

	p := internal.NewParticipant(uuid.NewString(), conn, rate.NewLimiter(inboundRate, inboundBurst))
	log.Printf("[HandleWebSocket] connection %s from %s", p.ID, r.RemoteAddr)

	go h.readLoop(conn, p)
}

func (h *Handler) readLoop(conn *websocket.Conn, p *internal.Participant) {
	var roomCode string

	defer func() {
		conn.Close()
		if roomCode != "" {
			h.coordinator.HandleDisconnect(roomCode, p.ID)
		}
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			log.Printf("[readLoop] %s read error: %v", p.ID, err)
			return
		}

		if !p.Limiter.Allow() {
			log.Printf("[readLoop] %s over message budget, dropping frame", p.ID)
			continue
		}

		var msg internal.Message[json.RawMessage]
		if err := json.Unmarshal(raw, &msg); err != nil {
			log.Printf("[readLoop] %s bad envelope: %v", p.ID, err)
			continue
		}

		switch msg.Type {
		case internal.EventCreateRoom:
			roomCode = h.handleCreateRoom(p, roomCode, msg.Data)

		case internal.EventJoinRoom:
			roomCode = h.handleJoinRoom(p, roomCode, msg.Data)

		case internal.EventStartSession:
			if !h.attached(p, roomCode) {
				continue
			}
			if err := h.coordinator.StartSession(roomCode, p.ID); err != nil {
				h.reject(p, err)
			}

		case internal.EventRequestWord:
			if !h.attached(p, roomCode) {
				continue
			}
			word, err := h.coordinator.RequestWord(roomCode, p.ID)
			if err != nil {
				h.reject(p, err)
				continue
			}
			// The word goes to the requester only, never broadcast.
			if err := SendTo(p, internal.Message[internal.PrivilegedContentData]{
				Type: internal.EventPrivilegedContent,
				Data: internal.PrivilegedContentData{Word: word},
			}); err != nil {
				log.Printf("[readLoop] %s failed to deliver word: %v", p.ID, err)
			}

		case internal.EventSubmitStroke:
			if !h.attached(p, roomCode) {
				continue
			}
			var data internal.StrokeData
			if err := json.Unmarshal(msg.Data, &data); err != nil {
				log.Printf("[readLoop] %s bad stroke payload: %v", p.ID, err)
				continue
			}
			if err := h.coordinator.SubmitStroke(roomCode, p.ID, data); err != nil {
				h.reject(p, err)
			}

		case internal.EventSubmitGuess:
			if !h.attached(p, roomCode) {
				continue
			}
			var data internal.GuessData
			if err := json.Unmarshal(msg.Data, &data); err != nil {
				log.Printf("[readLoop] %s bad guess payload: %v", p.ID, err)
				continue
			}
			if err := h.coordinator.SubmitGuess(roomCode, p.ID, data.Value); err != nil {
				h.reject(p, err)
			}

		case internal.EventSubmitMove:
			if !h.attached(p, roomCode) {
				continue
			}
			var data internal.MoveData
			if err := json.Unmarshal(msg.Data, &data); err != nil {
				log.Printf("[readLoop] %s bad move payload: %v", p.ID, err)
				continue
			}
			if err := h.coordinator.SubmitMove(roomCode, p.ID, data.Value); err != nil {
				h.reject(p, err)
			}

		case internal.EventClearSurface:
			if !h.attached(p, roomCode) {
				continue
			}
			if err := h.coordinator.ClearCanvas(roomCode, p.ID); err != nil {
				h.reject(p, err)
			}

		default:
			log.Printf("[readLoop] %s unknown message type %q", p.ID, msg.Type)
		}
	}
}

func (h *Handler) handleCreateRoom(p *internal.Participant, roomCode string, raw json.RawMessage) string {
	if roomCode != "" {
		h.reject(p, internal.ErrAlreadyInRoom)
		return roomCode
	}
	var data internal.CreateRoomData
	if err := json.Unmarshal(raw, &data); err != nil {
		log.Printf("[handleCreateRoom] %s bad payload: %v", p.ID, err)
		return roomCode
	}
	p.Name = displayName(data.DisplayName)

	room, err := h.coordinator.Registry().CreateRoom(data.Variant, p)
	if err != nil {
		h.reject(p, err)
		return roomCode
	}

	room.Mu.RLock()
	snap := room.SnapshotLocked(utils.MaskWord)
	room.Mu.RUnlock()

	if err := SendTo(p, internal.Message[internal.RoomCreatedData]{
		Type: internal.EventRoomCreated,
		Data: internal.RoomCreatedData{
			RoomCode:      room.Code,
			ParticipantID: p.ID,
			IsHost:        true,
			Snapshot:      snap,
		},
	}); err != nil {
		log.Printf("[handleCreateRoom] %s failed to confirm: %v", p.ID, err)
	}
	return room.Code
}

func (h *Handler) handleJoinRoom(p *internal.Participant, roomCode string, raw json.RawMessage) string {
	if roomCode != "" {
		h.reject(p, internal.ErrAlreadyInRoom)
		return roomCode
	}
	var data internal.JoinRoomData
	if err := json.Unmarshal(raw, &data); err != nil {
		log.Printf("[handleJoinRoom] %s bad payload: %v", p.ID, err)
		return roomCode
	}
	p.Name = displayName(data.DisplayName)

	room, err := h.coordinator.Registry().JoinRoom(data.RoomCode, p)
	if err != nil {
		h.reject(p, err)
		return roomCode
	}

	room.Mu.RLock()
	snap := room.SnapshotLocked(utils.MaskWord)
	hostID := room.HostID
	count := len(room.Participants)
	room.Mu.RUnlock()

	if err := SendTo(p, internal.Message[internal.RoomJoinedData]{
		Type: internal.EventRoomJoined,
		Data: internal.RoomJoinedData{
			RoomCode:      room.Code,
			ParticipantID: p.ID,
			IsHost:        p.ID == hostID,
			Snapshot:      snap,
		},
	}); err != nil {
		log.Printf("[handleJoinRoom] %s failed to confirm: %v", p.ID, err)
	}

	BroadcastToRoomExcept(room, internal.Message[internal.ParticipantJoinedData]{
		Type: internal.EventParticipantJoined,
		Data: internal.ParticipantJoinedData{
			Participant: p.Snapshot(hostID),
			Count:       count,
		},
	}, p.ID)

	return room.Code
}

// attached rejects room-scoped actions from connections that never joined
// a room.
func (h *Handler) attached(p *internal.Participant, roomCode string) bool {
	if roomCode == "" {
		h.reject(p, internal.ErrRoomNotFound)
		return false
	}
	return true
}

// reject reports an error back to the offending participant only; nothing
// is broadcast and no state has been touched.
func (h *Handler) reject(p *internal.Participant, err error) {
	if sendErr := SendTo(p, internal.Message[internal.ActionRejectedData]{
		Type: internal.EventActionRejected,
		Data: internal.ActionRejectedData{
			Reason: internal.RejectionReason(err),
			Detail: err.Error(),
		},
	}); sendErr != nil {
		log.Printf("[reject] %s could not deliver rejection (%v): %v", p.ID, err, sendErr)
	}
}

func displayName(name string) string {
	if name == "" {
		return "Anonymous"
	}
	return name
}
