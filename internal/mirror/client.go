package mirror

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/udisondev/mobpatch/internal/constants"
	"github.com/udisondev/mobpatch/internal/crypto"
	"github.com/udisondev/mobpatch/internal/gameserver/clientpackets"
	"github.com/udisondev/mobpatch/internal/protocol"
)

// Client connects a Mirror to a tracker server and keeps it in sync.
// Every announced mob is tracked automatically.
type Client struct {
	conn   net.Conn
	enc    *crypto.SessionCipher
	mirror *Mirror

	writeMu sync.Mutex
}

// Dial connects to a tracker server at addr.
func Dial(ctx context.Context, addr string, key []byte, m *Mirror) (*Client, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dialing tracker %s: %w", addr, err)
	}
	c, err := NewClient(conn, key, m)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return c, nil
}

// NewClient wraps an established connection.
func NewClient(conn net.Conn, key []byte, m *Mirror) (*Client, error) {
	enc, err := crypto.NewSessionCipher(key)
	if err != nil {
		return nil, fmt.Errorf("tracker session key: %w", err)
	}
	c := &Client{conn: conn, enc: enc, mirror: m}
	m.OnSpawn = func(objectID uint32) {
		if err := c.Track(objectID); err != nil {
			slog.Warn("auto-track failed", "objectID", objectID, "error", err)
		}
	}
	return c, nil
}

// Mirror returns the mirror kept in sync.
func (c *Client) Mirror() *Mirror {
	return c.mirror
}

// Track asks the server to stream an entity.
func (c *Client) Track(objectID uint32) error {
	data, err := (&clientpackets.RequestTrack{ObjectID: int32(objectID)}).Write()
	if err != nil {
		return fmt.Errorf("serializing RequestTrack: %w", err)
	}
	return c.send(data)
}

// Untrack asks the server to stop streaming an entity.
func (c *Client) Untrack(objectID uint32) error {
	data, err := (&clientpackets.RequestUntrack{ObjectID: int32(objectID)}).Write()
	if err != nil {
		return fmt.Errorf("serializing RequestUntrack: %w", err)
	}
	return c.send(data)
}

func (c *Client) send(payload []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return protocol.Send(c.conn, c.enc, payload)
}

// Run reads packets into the mirror until ctx is done or the connection
// drops. Malformed packets are logged and skipped.
func (c *Client) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		c.conn.Close()
	}()

	buf := make([]byte, constants.ReadBufferSize)
	for {
		payload, err := protocol.ReadPacket(c.conn, c.enc, buf)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("reading tracker packet: %w", err)
		}
		if err := c.mirror.Handle(payload); err != nil {
			slog.Warn("applying tracker packet", "error", err)
		}
	}
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
