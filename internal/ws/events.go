package ws

// Event names pushed to connected viewers. These names and payload shapes
// are the wire contract; existing clients switch on them.
const (
	EventProductCreated     = "productCreated"
	EventProductUpdated     = "productUpdated"
	EventProductDeleted     = "productDeleted"
	EventStockChanged       = "stockChanged"
	EventOrderCreated       = "orderCreated"
	EventOrderStatusChanged = "orderStatusChanged"
	EventChatMessage        = "chatMessage"
)

// Envelope wraps every broadcast frame.
type Envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Broadcaster is the write side of the notification bus. Services hold this
// rather than the concrete Hub.
type Broadcaster interface {
	Emit(event string, data interface{})
}
