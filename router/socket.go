package router

import (
	"encoding/json"
	"strconv"

	"pairchat-service/chat"
	"pairchat-service/event"
	"pairchat-service/socketio"
	"pairchat-service/utils"

	"github.com/zishang520/socket.io/v2/socket"
)

// decodeEvent round-trips a raw socket.io argument through JSON into a
// typed event. Socket.io hands object arguments over as generic maps.
func decodeEvent[T any](arg interface{}) (*T, error) {
	raw, err := json.Marshal(arg)
	if err != nil {
		return nil, err
	}
	ev := new(T)
	if err := json.Unmarshal(raw, ev); err != nil {
		return nil, err
	}
	return ev, nil
}

func firstArg(args []interface{}) interface{} {
	if len(args) == 0 {
		return nil
	}
	return args[0]
}

// audit publishes a chat event to the audit bus. Best-effort.
func audit(action string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}
	event.Emit("chat", action, raw, true)
}

func Socket(server *socket.Server, svc *chat.Service, registry *chat.Registry) {
	server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)
		sess := socketio.Wrap(client)

		// Handshake-authenticated connections are registered immediately.
		if claims, ok := client.Data().(*utils.TokenMetadata); ok {
			if id, err := strconv.ParseUint(claims.Id, 10, 64); err == nil {
				registry.Join(uint(id), sess)
			}
		}

		client.On("join", func(args ...interface{}) {
			arg := firstArg(args)
			// Clients send either {userId} or the bare id.
			if ev, err := decodeEvent[chat.JoinEvent](arg); err == nil && ev.UserID != 0 {
				registry.Join(ev.UserID, sess)
				return
			}
			if id, err := decodeEvent[uint](arg); err == nil && *id != 0 {
				registry.Join(*id, sess)
			}
		})

		client.On("send_message", func(args ...interface{}) {
			ev, err := decodeEvent[chat.SendMessageEvent](firstArg(args))
			if err != nil {
				client.Emit(chat.EventMessageError, chat.ErrorPayload{Error: "malformed send_message payload"})
				return
			}

			payload, err := svc.Send(*ev)
			if err != nil {
				client.Emit(chat.EventMessageError, chat.ErrorPayload{Error: err.Error()})
				return
			}

			audit("message_created", payload)
		})

		client.On("delete_message", func(args ...interface{}) {
			ev, err := decodeEvent[chat.DeleteMessageEvent](firstArg(args))
			if err != nil {
				client.Emit(chat.EventDeleteError, chat.ErrorPayload{Error: "malformed delete_message payload"})
				return
			}

			switch ev.DeleteType {
			case chat.DeleteForEveryone:
				err = svc.DeleteForEveryone(ev.MessageID, ev.UserID)
			default:
				err = svc.DeleteForMe(ev.MessageID, ev.UserID)
			}
			if err != nil {
				client.Emit(chat.EventDeleteError, chat.ErrorPayload{Error: err.Error()})
				return
			}

			audit("message_deleted", chat.MessageDeletedPayload{MessageID: ev.MessageID})
		})

		client.On("user_typing", func(args ...interface{}) {
			ev, err := decodeEvent[chat.TypingEvent](firstArg(args))
			if err != nil {
				return
			}
			svc.Typing(*ev)
		})

		client.On("user_online", func(args ...interface{}) {
			ev, err := decodeEvent[chat.PresenceEvent](firstArg(args))
			if err != nil {
				return
			}
			svc.Presence(*ev)
		})

		client.On("message_status_update", func(args ...interface{}) {
			ev, err := decodeEvent[chat.StatusUpdateEvent](firstArg(args))
			if err != nil {
				return
			}
			svc.StatusUpdate(*ev)
		})

		client.On("disconnect", func(args ...interface{}) {
			registry.Leave(sess)
		})
	})
}
