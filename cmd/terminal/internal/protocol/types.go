package protocol

const (
	ActionSubscribe      = "subscribe"
	ActionUnsubscribe    = "unsubscribe"
	ActionUnsubscribeAll = "unsubscribe_all"
	ActionResize         = "resize"
)

const (
	TypeAck    = "ack"
	TypeError  = "error"
	TypeQuotes = "quotes"
	TypeChart  = "chart"
)

type WSRequest struct {
	Action  string         `json:"action"`
	Payload RequestPayload `json:"payload"`
	ID      string         `json:"id,omitempty"`
}

type RequestPayload struct {
	Symbols []string `json:"symbols,omitempty"`
	// Chart viewport in pixels, resize only.
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
}

type WSResponse struct {
	Type    string      `json:"type"`             // "ack", "error", "quotes", "chart"
	ID      string      `json:"id,omitempty"`     // Matches request ID
	Status  string      `json:"status,omitempty"` // "success", "error"
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}
