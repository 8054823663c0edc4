package listener

import (
	"log"

	"pairchat-service/event"
)

var (
	ChatChannel = make(chan event.EventChannelData)
)

// Chat drains the chat audit queue. The payloads already land in the event
// logs; this loop just surfaces them on stdout for operators.
func Chat() {
	for ev := range ChatChannel {
		log.Printf("event: chat %s %s", ev.Action, string(ev.Data))
	}
}
