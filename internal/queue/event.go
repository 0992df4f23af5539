// Package queue defines message payloads exchanged over the message broker.
package queue

// TaskNotificationEvent is published when a topic notification should
// be delivered to a department chat. It carries everything the sender
// needs so the consumer never has to query the data store.
type TaskNotificationEvent struct {
	TopicID  int    `json:"topic_id"`
	Title    string `json:"title"`
	Type     string `json:"type"`
	Priority string `json:"priority"`
	Sender   string `json:"sender"`
	DueDate  string `json:"due_date"`
	Details  string `json:"details"`
	ChatID   string `json:"chat_id"`
	Kind     string `json:"kind"` // "new" or "reminder"
}
