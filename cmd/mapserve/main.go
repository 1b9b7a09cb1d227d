package main

import (
	"flag"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/hollowmoor/hollowmoor/server/internal/config"
	"github.com/hollowmoor/hollowmoor/server/internal/dungeon"
	"github.com/hollowmoor/hollowmoor/server/internal/logger"
	"github.com/hollowmoor/hollowmoor/server/internal/render"
	"github.com/hollowmoor/hollowmoor/server/internal/rng"
	"github.com/hollowmoor/hollowmoor/server/internal/wild"
)

// mapServer serves rendered maps over WebSocket. Each request is a
// single text line; each reply is a single text message.
type mapServer struct {
	cfg     *config.EngineConfig
	dungeon *dungeon.Generator
	wild    *wild.Generator
}

func main() {
	configFile := flag.String("config", "data/generator.yaml", "Path to generator config YAML file")
	treeFile := flag.String("tree", "", "Path to terrain tree YAML file (overrides config)")
	loggingConfig := flag.String("logging", "data/logging.yaml", "Path to logging config YAML file")
	listenAddr := flag.String("listen", "", "Listen address (overrides config)")
	flag.Parse()

	// Initialize logger first (before any logging)
	logConfig, _ := logger.LoadConfig(*loggingConfig)
	logger.Initialize(logConfig)

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		logger.Error("Failed to load config", "error", err)
		return
	}

	treePath := *treeFile
	if treePath == "" {
		treePath = cfg.TreeFile
	}
	var tree *wild.Tree
	if treePath != "" {
		tree, err = wild.LoadTreeFromYAML(treePath)
		if err != nil {
			logger.Error("Failed to load terrain tree", "path", treePath, "error", err)
			return
		}
	}

	s := &mapServer{
		cfg:     cfg,
		dungeon: dungeon.NewGenerator(cfg.Dungeon),
		wild:    wild.NewGenerator(tree, cfg.Wild),
	}

	addr := *listenAddr
	if addr == "" {
		addr = cfg.Serve.ListenAddr
	}

	http.HandleFunc("/ws", s.handleWebSocketUpgrade)

	logger.Info("Map server listening", "address", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		logger.Error("Map server stopped", "error", err)
	}
}

// handleWebSocketUpgrade upgrades an HTTP connection to WebSocket.
func (s *mapServer) handleWebSocketUpgrade(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			allowed := s.cfg.Serve.IsOriginAllowed(origin, r.Host)
			if !allowed {
				logger.Warning("WebSocket connection rejected - origin not allowed",
					"origin", origin,
					"host", r.Host,
					"remote_addr", r.RemoteAddr)
			}
			return allowed
		},
	}

	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("WebSocket upgrade failed", "error", err)
		return
	}

	go s.handleConnection(wsConn)
}

// handleConnection answers map requests until the client disconnects
func (s *mapServer) handleConnection(conn *websocket.Conn) {
	defer conn.Close()

	if s.cfg.Serve.MaxMessageSize > 0 {
		conn.SetReadLimit(s.cfg.Serve.MaxMessageSize)
	}

	logger.Info("Map client connected", "remote_addr", conn.RemoteAddr().String())

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			logger.Info("Map client disconnected", "remote_addr", conn.RemoteAddr().String())
			return
		}

		reply := s.handleRequest(strings.TrimSpace(string(message)))
		if err := conn.WriteMessage(websocket.TextMessage, []byte(reply)); err != nil {
			logger.Error("Failed to write map reply", "error", err)
			return
		}
	}
}

// handleRequest parses one request line and renders the reply.
// Requests:
//
//	dungeon <seed> <width> <height> <depth>
//	wilderness <seed> <width> <height>
//	legend
func (s *mapServer) handleRequest(request string) string {
	fields := strings.Fields(request)
	if len(fields) == 0 {
		return usage()
	}

	switch fields[0] {
	case "dungeon":
		if len(fields) != 5 {
			return usage()
		}
		args, ok := parseInts(fields[1:])
		if !ok {
			return usage()
		}

		d, err := s.dungeon.Generate(dungeon.Config{
			Width:  int(args[1]),
			Height: int(args[2]),
			Depth:  int(args[3]),
		}, rng.New(args[0]))
		if err != nil {
			return fmt.Sprintf("error: %v", err)
		}
		header := fmt.Sprintf("Dungeon (Seed: %d, Depth: %d, Rating: %d)\n", args[0], d.Depth, d.Rating)
		return header + render.Level(d.Grid)

	case "wilderness":
		if len(fields) != 4 {
			return usage()
		}
		args, ok := parseInts(fields[1:])
		if !ok {
			return usage()
		}

		m, err := s.wild.Generate(int(args[1]), int(args[2]), rng.New(args[0]))
		if err != nil {
			return fmt.Sprintf("error: %v", err)
		}
		header := fmt.Sprintf("Wilderness (Seed: %d, Places: %d)\n", args[0], len(m.Places))
		return header + render.Level(m.Grid)

	case "legend":
		return render.Legend()

	default:
		return usage()
	}
}

func parseInts(fields []string) ([]int64, bool) {
	values := make([]int64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, false
		}
		values[i] = v
	}
	return values, true
}

func usage() string {
	return strings.Join([]string{
		"usage:",
		"  dungeon <seed> <width> <height> <depth>",
		"  wilderness <seed> <width> <height>",
		"  legend",
	}, "\n")
}
