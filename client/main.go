package main

import (
	"bufio"
	"encoding/json"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

type request struct {
	ID     int64           `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
}

type response struct {
	ID     int64   `json:"id"`
	Error  *string `json:"error"`
	Result string  `json:"result"`
}

type questionParams struct {
	Question string   `json:"question"`
	Choices  []string `json:"choices"`
}

type announcementParams struct {
	Message string `json:"message"`
}

// lastQuestionID is the envelope ID of the most recent ask_question
// request; answers echo it back.
var lastQuestionID atomic.Int64

func handleMessage(data []byte) {
	var req request
	if err := json.Unmarshal(data, &req); err != nil {
		log.Printf("Received invalid frame: %s", string(data))
		return
	}

	switch req.Method {
	case "announcement":
		var params announcementParams
		if err := json.Unmarshal(req.Params, &params); err == nil {
			log.Printf("*** %s", params.Message)
		}
	case "ask_question":
		var params questionParams
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return
		}
		lastQuestionID.Store(req.ID)
		log.Printf("Q: %s", params.Question)
		for i, choice := range params.Choices {
			log.Printf("  %d) %s", i+1, choice)
		}
		log.Println("Type the exact answer text and press Enter.")
	case "answers":
		log.Printf("Round results: %s", string(req.Params))
	default:
		log.Printf("Unknown method %q: %s", req.Method, string(data))
	}
}

func sendAnswer(c *websocket.Conn, answer string) error {
	resp := response{
		ID:     lastQuestionID.Load(),
		Error:  nil,
		Result: answer,
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return c.WriteMessage(websocket.TextMessage, data)
}

func main() {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	addr := "localhost:9999"
	if len(os.Args) > 1 {
		addr = os.Args[1]
	}
	u := url.URL{Scheme: "ws", Host: addr, Path: "/ws"}
	log.Printf("Connecting to %s", u.String())

	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Dial failed: %v", err)
	}
	defer c.Close()

	done := make(chan struct{})

	// Read loop
	go func() {
		defer close(done)
		for {
			_, message, err := c.ReadMessage()
			if err != nil {
				log.Println("Read error:", err)
				return
			}
			handleMessage(message)
		}
	}()

	// Stdin loop feeding answers
	lines := make(chan string)
	go func() {
		reader := bufio.NewReader(os.Stdin)
		for {
			text, err := reader.ReadString('\n')
			if err != nil {
				close(lines)
				return
			}
			lines <- strings.TrimSpace(text)
		}
	}()

	for {
		select {
		case <-done:
			return
		case <-interrupt:
			log.Println("Interrupt received, closing connection.")
			err := c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			if err != nil {
				log.Println("Write close error:", err)
			}
			select {
			case <-done:
			case <-time.After(time.Second):
			}
			return
		case text, ok := <-lines:
			if !ok {
				return
			}
			if text == "" {
				continue
			}
			if err := sendAnswer(c, text); err != nil {
				log.Println("Write error:", err)
				return
			}
			log.Printf("-> SENT answer: %s", text)
		}
	}
}
