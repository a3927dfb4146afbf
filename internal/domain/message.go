package domain

import "time"

// timeOfDayLayout renders timestamps the way chat clients display them,
// e.g. "2:05 pm".
const timeOfDayLayout = "3:04 pm"

// ChatMessage is one persisted chat line. The author's name is stored
// alongside the id on purpose: history listing never joins against users,
// at the cost of old messages keeping old display names.
type ChatMessage struct {
	ID       string    `json:"id"`
	UserID   string    `json:"userId"`
	UserName string    `json:"userName"`
	Message  string    `json:"message"`
	Date     time.Time `json:"date"`
}

// ChatEvent is the live wire shape, both for the echo to the sender and
// the fan-out to everyone else.
type ChatEvent struct {
	UserName string `json:"userName"`
	Msg      string `json:"msg"`
	Time     string `json:"time"`
}

// FormatMessage builds the wire event for a chat line. The time field is
// rendered at send time, not read back from the stored record.
func FormatMessage(userName, msg string) ChatEvent {
	return ChatEvent{
		UserName: userName,
		Msg:      msg,
		Time:     time.Now().Format(timeOfDayLayout),
	}
}
