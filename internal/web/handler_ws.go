package web

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/coder/websocket"
	"github.com/creack/pty"
	"go.uber.org/zap"
)

type resizeMsg struct {
	Type string `json:"type"`
	Cols uint16 `json:"cols"`
	Rows uint16 `json:"rows"`
}

// tuiCommand runs this binary's storefront against the configured API.
func (s *Server) tuiCommand(exe string) *exec.Cmd {
	cmd := exec.Command(exe, "tui", "--server", s.apiAddr)
	cmd.Env = append(os.Environ(), "TERM=xterm-256color", "COLORTERM=truecolor")
	return cmd
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	session := s.sessionID(w, r)
	log := s.log.With(zap.String("session", session))

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		log.Warn("websocket accept failed", zap.Error(err))
		return
	}
	defer conn.CloseNow()

	cols := parseUint16(r.URL.Query().Get("cols"), 80)
	rows := parseUint16(r.URL.Query().Get("rows"), 24)

	exe, err := os.Executable()
	if err != nil {
		log.Error("cannot find executable", zap.Error(err))
		conn.Close(websocket.StatusInternalError, "cannot find executable")
		return
	}

	cmd := s.tuiCommand(exe)
	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: rows, Cols: cols})
	if err != nil {
		log.Error("pty start failed", zap.Error(err))
		conn.Close(websocket.StatusInternalError, "failed to start pty")
		return
	}
	log.Info("terminal session started", zap.Uint16("cols", cols), zap.Uint16("rows", rows))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var once sync.Once
	cleanup := func() {
		cancel()
		ptmx.Close()
		if cmd.Process != nil {
			cmd.Process.Kill()
			cmd.Wait()
		}
		log.Info("terminal session ended")
	}

	// PTY -> WebSocket, binary frames since output may split UTF-8 sequences.
	go func() {
		buf := make([]byte, 32*1024)
		for {
			n, err := ptmx.Read(buf)
			if err != nil {
				log.Debug("pty read", zap.Error(err))
				once.Do(cleanup)
				conn.Close(websocket.StatusNormalClosure, "process exited")
				return
			}
			if err := conn.Write(ctx, websocket.MessageBinary, buf[:n]); err != nil {
				log.Debug("ws write", zap.Error(err))
				once.Do(cleanup)
				return
			}
		}
	}()

	// WebSocket -> PTY
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			log.Debug("ws read", zap.Error(err))
			once.Do(cleanup)
			return
		}

		if resize, ok := parseResize(data); ok {
			pty.Setsize(ptmx, &pty.Winsize{Rows: resize.Rows, Cols: resize.Cols})
			continue
		}

		if _, err := ptmx.Write(data); err != nil {
			once.Do(cleanup)
			return
		}
	}
}

// parseResize recognises the terminal's resize control frame. Anything
// else is keyboard input.
func parseResize(data []byte) (resizeMsg, bool) {
	if !strings.HasPrefix(string(data), "{") {
		return resizeMsg{}, false
	}
	var msg resizeMsg
	if json.Unmarshal(data, &msg) != nil || msg.Type != "resize" || msg.Cols == 0 || msg.Rows == 0 {
		return resizeMsg{}, false
	}
	return msg, true
}

func parseUint16(s string, def uint16) uint16 {
	if s == "" {
		return def
	}
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil || v == 0 {
		return def
	}
	return uint16(v)
}
