package tracker

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/udisondev/mobpatch/internal/constants"
	"github.com/udisondev/mobpatch/internal/crypto"
	"github.com/udisondev/mobpatch/internal/protocol"
)

// ErrSessionClosed is returned by Send after the session was closed.
var ErrSessionClosed = errors.New("session closed")

// Session is one observer connection with an asynchronous write queue.
// Payloads are sealed and framed by the write pump.
type Session struct {
	conn   net.Conn
	remote string
	enc    *crypto.SessionCipher

	sendCh       chan []byte
	closeCh      chan struct{}
	closeOnce    sync.Once
	done         chan struct{}
	writeTimeout time.Duration
}

// NewSession wraps conn. Zero queueSize/writeTimeout select the defaults.
// The write pump starts immediately.
func NewSession(conn net.Conn, enc *crypto.SessionCipher, queueSize int, writeTimeout time.Duration) *Session {
	if queueSize <= 0 {
		queueSize = constants.DefaultSendQueueSize
	}
	if writeTimeout <= 0 {
		writeTimeout = constants.DefaultWriteTimeout
	}
	s := &Session{
		conn:         conn,
		remote:       conn.RemoteAddr().String(),
		enc:          enc,
		sendCh:       make(chan []byte, queueSize),
		closeCh:      make(chan struct{}),
		done:         make(chan struct{}),
		writeTimeout: writeTimeout,
	}
	go s.writePump()
	return s
}

// Remote returns the observer address.
func (s *Session) Remote() string {
	return s.remote
}

// Send queues payload (opcode included) without blocking.
// A full queue means a slow observer: the session is closed.
// Payload must not be modified after the call.
func (s *Session) Send(payload []byte) error {
	select {
	case <-s.closeCh:
		return ErrSessionClosed
	default:
	}

	select {
	case s.sendCh <- payload:
		return nil
	default:
		slog.Warn("send queue full, disconnecting slow observer", "remote", s.remote)
		s.CloseAsync()
		return fmt.Errorf("send queue full")
	}
}

// SendSync queues payload and blocks until it is accepted, the session
// closes or timeout passes. Used for the initial sync burst.
func (s *Session) SendSync(payload []byte, timeout time.Duration) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case s.sendCh <- payload:
		return nil
	case <-timer.C:
		return fmt.Errorf("send timeout after %v", timeout)
	case <-s.closeCh:
		return ErrSessionClosed
	}
}

// CloseAsync signals the write pump to stop. Safe to call multiple times.
func (s *Session) CloseAsync() {
	s.closeOnce.Do(func() {
		close(s.closeCh)
	})
}

// Close stops the write pump and closes the connection.
func (s *Session) Close() error {
	s.CloseAsync()
	return s.conn.Close()
}

// Done is closed when the write pump exits.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

func (s *Session) writePump() {
	defer close(s.done)

	for {
		select {
		case payload := <-s.sendCh:
			if err := s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout)); err != nil {
				slog.Warn("set write deadline failed", "remote", s.remote, "error", err)
				s.Close()
				return
			}
			if err := protocol.Send(s.conn, s.enc, payload); err != nil {
				slog.Warn("write failed", "remote", s.remote, "error", err)
				s.Close()
				return
			}
		case <-s.closeCh:
			return
		}
	}
}
