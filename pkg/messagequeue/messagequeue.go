// Package messagequeue provides the broker used for best-effort event
// publishing, such as completed ownership transfers.
package messagequeue

// MessageQueue defines the interface for message queue services. Consume
// registers a handler and returns; the handler runs on a background
// goroutine until Close.
type MessageQueue interface {
	Publish(queueName string, body []byte) error
	Consume(queueName string, handler func(body []byte)) error
	Close() error
}
