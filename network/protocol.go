package network

// Server-to-client methods. The envelope loosely follows JSON-RPC 1.0: the
// server issues requests, the client replies with responses.
const (
	MethodAskQuestion  = "ask_question"
	MethodAnswers      = "answers"
	MethodAnnouncement = "announcement"
)

// Request is a server-to-client message.
type Request struct {
	ID     int64       `json:"id"`
	Method string      `json:"method"`
	Params interface{} `json:"params"`
}

// Response is a client-to-server message. Only Result is consumed by the
// game; a non-null Error means the client could not produce an answer.
type Response struct {
	ID     int64   `json:"id"`
	Error  *string `json:"error"`
	Result string  `json:"result"`
}
