package rpc

import (
	"net"
	"net/rpc"

	"github.com/wfunc/triviaserver/logger"
	"github.com/wfunc/triviaserver/matchmaker"
)

// Server manages the RPC listener for the admin surface.
type Server struct {
	listener net.Listener
	address  string
}

func NewServer(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: listener,
		address:  addr,
	}, nil
}

// Start begins listening for RPC requests.
func (s *Server) Start() {
	logger.Log.Infof("RPC server listening on %s", s.address)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if _, ok := err.(*net.OpError); ok {
				logger.Log.Info("RPC server listener closed.")
				return
			}
			logger.Log.Errorf("RPC server accept error: %v", err)
			continue
		}
		go rpc.ServeConn(conn)
	}
}

func (s *Server) Stop() {
	if s.listener != nil {
		logger.Log.Info("Stopping RPC server.")
		s.listener.Close()
	}
}

// TriviaService exposes live server stats over net/rpc for operational
// tooling. Methods follow the net/rpc signature convention.
type TriviaService struct {
	matchmaker *matchmaker.Matchmaker
}

func NewTriviaService(m *matchmaker.Matchmaker) *TriviaService {
	return &TriviaService{matchmaker: m}
}

type StatsArgs struct{}

type StatsReply struct {
	WaitingPlayers  int
	SessionsStarted int64
	SessionsAborted int64
}

func (ts *TriviaService) GetStats(args *StatsArgs, reply *StatsReply) error {
	stats := ts.matchmaker.Stats()
	reply.WaitingPlayers = stats.WaitingPlayers
	reply.SessionsStarted = stats.SessionsStarted
	reply.SessionsAborted = stats.SessionsAborted
	return nil
}
