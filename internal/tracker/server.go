// Package tracker serves mob state to observers: sessions subscribe to
// entities and receive status and attack target updates as they happen.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/udisondev/mobpatch/internal/config"
	"github.com/udisondev/mobpatch/internal/constants"
	"github.com/udisondev/mobpatch/internal/crypto"
	"github.com/udisondev/mobpatch/internal/gameserver/clientpackets"
	"github.com/udisondev/mobpatch/internal/gameserver/serverpackets"
	"github.com/udisondev/mobpatch/internal/patch"
	"github.com/udisondev/mobpatch/internal/protocol"
	"github.com/udisondev/mobpatch/internal/world"
)

// Server accepts observer connections.
type Server struct {
	cfg      config.Tracker
	world    *world.World
	enc      *crypto.SessionCipher
	registry *Registry
	bcast    *Broadcaster

	listener net.Listener
	mu       sync.Mutex
}

// NewServer creates a tracker server over w.
func NewServer(cfg config.Tracker, w *world.World, registry *Registry) (*Server, error) {
	key, err := crypto.ParseSessionKey(cfg.SessionKey)
	if err != nil {
		return nil, fmt.Errorf("tracker session key: %w", err)
	}
	enc, err := crypto.NewSessionCipher(key)
	if err != nil {
		return nil, err
	}
	if cfg.SendQueueSize <= 0 {
		cfg.SendQueueSize = constants.DefaultSendQueueSize
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = constants.DefaultWriteTimeout
	}
	return &Server{
		cfg:      cfg,
		world:    w,
		enc:      enc,
		registry: registry,
		bcast:    NewBroadcaster(registry),
	}, nil
}

// Broadcaster returns the broadcaster bound to this server's registry.
func (s *Server) Broadcaster() *Broadcaster {
	return s.bcast
}

// Addr returns the listening address, or nil before Run/Serve.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Run listens on cfg.Addr() and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections from ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	slog.Info("tracker server started", "address", ln.Addr())

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			slog.Error("failed to accept observer connection", "error", err)
			continue
		}

		if tcpConn, ok := conn.(*net.TCPConn); ok {
			if err := tcpConn.SetKeepAlive(true); err != nil {
				slog.Warn("set keepalive failed", "error", err)
			}
			if err := tcpConn.SetKeepAlivePeriod(30 * time.Second); err != nil {
				slog.Warn("set keepalive period failed", "error", err)
			}
		}

		wg.Go(func() {
			s.handleConnection(ctx, conn)
		})
	}
}

func (s *Server) handleConnection(ctx context.Context, conn net.Conn) {
	sess := NewSession(conn, s.enc, s.cfg.SendQueueSize, s.cfg.WriteTimeout)
	s.registry.AddSession(sess)
	defer func() {
		s.registry.RemoveSession(sess)
		sess.Close()
		slog.Info("observer disconnected", "remote", sess.Remote())
	}()

	go func() {
		select {
		case <-ctx.Done():
		case <-sess.Done():
		}
		conn.Close()
	}()

	slog.Info("new observer connection", "remote", sess.Remote())

	s.world.ForEachMob(func(p *patch.MobPatch) bool {
		if err := s.sendMobInfo(sess, p); err != nil {
			slog.Warn("sending MobInfo", "remote", sess.Remote(), "error", err)
			return false
		}
		return true
	})

	buf := make([]byte, constants.ReadBufferSize)
	for {
		payload, err := protocol.ReadPacket(conn, s.enc, buf)
		if err != nil {
			if ctx.Err() == nil {
				slog.Debug("observer read ended", "remote", sess.Remote(), "error", err)
			}
			return
		}
		if err := s.handlePacket(sess, payload); err != nil {
			slog.Warn("handling observer packet", "remote", sess.Remote(), "error", err)
			return
		}
	}
}

func (s *Server) handlePacket(sess *Session, payload []byte) error {
	opcode, body := payload[0], payload[1:]
	switch opcode {
	case clientpackets.OpcodeRequestTrack:
		req, err := clientpackets.ParseRequestTrack(body)
		if err != nil {
			return fmt.Errorf("parsing RequestTrack: %w", err)
		}
		return s.track(sess, uint32(req.ObjectID))

	case clientpackets.OpcodeRequestUntrack:
		req, err := clientpackets.ParseRequestUntrack(body)
		if err != nil {
			return fmt.Errorf("parsing RequestUntrack: %w", err)
		}
		s.registry.Untrack(uint32(req.ObjectID), sess)
		return nil

	default:
		return fmt.Errorf("unknown opcode 0x%02X", opcode)
	}
}

// track sends the entity's current status, then subscribes sess and queues
// the current target in the same step as target changes.
func (s *Server) track(sess *Session, objectID uint32) error {
	p, ok := s.world.Mob(objectID)
	if !ok {
		data, err := serverpackets.NewDeleteObject(objectID).Write()
		if err != nil {
			return fmt.Errorf("serializing DeleteObject: %w", err)
		}
		return sess.SendSync(data, s.cfg.WriteTimeout)
	}

	status, err := serverpackets.NewMobStatus(p.Mob(), p.BehaviorState().Inaction()).Write()
	if err != nil {
		return fmt.Errorf("serializing MobStatus: %w", err)
	}
	if err := sess.SendSync(status, s.cfg.WriteTimeout); err != nil {
		return err
	}

	return p.SyncTarget(func() { s.registry.Track(objectID, sess) }, sess.Send)
}

func (s *Server) sendMobInfo(sess *Session, p *patch.MobPatch) error {
	data, err := serverpackets.NewMobInfo(p.Mob(), int8(p.Faction())).Write()
	if err != nil {
		return fmt.Errorf("serializing MobInfo: %w", err)
	}
	return sess.SendSync(data, s.cfg.WriteTimeout)
}

// AnnounceSpawn tells every observer about a new mob.
func (s *Server) AnnounceSpawn(p *patch.MobPatch) int {
	data, err := serverpackets.NewMobInfo(p.Mob(), int8(p.Faction())).Write()
	if err != nil {
		slog.Error("serializing MobInfo", "objectID", p.Mob().ObjectID(), "error", err)
		return 0
	}
	return s.bcast.BroadcastToAll(data)
}

// AnnounceRemoval tells every observer an entity left and drops its tracks.
func (s *Server) AnnounceRemoval(objectID uint32) int {
	s.registry.ForgetEntity(objectID)
	data, err := serverpackets.NewDeleteObject(objectID).Write()
	if err != nil {
		slog.Error("serializing DeleteObject", "objectID", objectID, "error", err)
		return 0
	}
	return s.bcast.BroadcastToAll(data)
}
