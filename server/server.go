package server

import (
	"net/http"
	"net/rpc"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/wfunc/triviaserver/logger"
	"github.com/wfunc/triviaserver/matchmaker"
	"github.com/wfunc/triviaserver/monitor"
	"github.com/wfunc/triviaserver/network"
	"github.com/wfunc/triviaserver/player"
	triviaserver_rpc "github.com/wfunc/triviaserver/rpc"
)

// GameServer accepts websocket connections and hands each player to the
// matchmaker. The per-connection handler then blocks until the player's
// game is over and only then tears the connection down.
type GameServer struct {
	addr         string
	upgrader     websocket.Upgrader
	matchmaker   *matchmaker.Matchmaker
	monitor      *monitor.Monitor
	rpcServer    *triviaserver_rpc.Server
	shutdownChan chan struct{}
}

func NewGameServer(addr, rpcAddr string, m *matchmaker.Matchmaker, mon *monitor.Monitor) *GameServer {
	s := &GameServer{
		addr:         addr,
		matchmaker:   m,
		monitor:      mon,
		shutdownChan: make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}

	rpcServer, err := triviaserver_rpc.NewServer(rpcAddr)
	if err != nil {
		logger.Log.Fatalf("Failed to create RPC server: %v", err)
	}
	s.rpcServer = rpcServer
	rpc.Register(triviaserver_rpc.NewTriviaService(m))

	return s
}

func (s *GameServer) Start() error {
	go s.rpcServer.Start()

	http.HandleFunc("/ws", s.handleWebSocket)
	logger.Log.Infof("Trivia server listening on %s", s.addr)
	return http.ListenAndServe(s.addr, nil)
}

func (s *GameServer) Shutdown() {
	close(s.shutdownChan)
	s.rpcServer.Stop()
	s.matchmaker.Wait()
}

func (s *GameServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Infof("Failed to upgrade connection: %v", err)
		return
	}
	s.handleConnection(conn)
}

func (s *GameServer) handleConnection(conn *websocket.Conn) {
	wsConn := network.NewWSConnection(conn)
	p := player.New(uuid.New().String(), wsConn)

	logger.Log.Infof("New connection from %s, player ID: %s", wsConn.RemoteAddr(), p.ID)
	if s.monitor != nil {
		s.monitor.IncOnlinePlayers()
	}

	defer func() {
		logger.Log.Infof("Connection closed from %s, player ID: %s", wsConn.RemoteAddr(), p.ID)
		if s.monitor != nil {
			s.monitor.DecOnlinePlayers()
		}
		wsConn.Close()
	}()

	s.matchmaker.Offer(p)

	// The player's game ends with a win, an elimination, or an abort; the
	// matchmaker guarantees every offered player is eventually signaled.
	select {
	case <-p.Done():
	case <-s.shutdownChan:
	}
}
