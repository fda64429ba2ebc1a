package tracker

import "log/slog"

// Broadcaster fans packets out to observer sessions.
// Implements patch.TrackerSender.
type Broadcaster struct {
	registry *Registry
}

// NewBroadcaster creates a broadcaster over registry.
func NewBroadcaster(registry *Registry) *Broadcaster {
	return &Broadcaster{registry: registry}
}

// SendToTrackers queues data for every session tracking entityID.
// Returns the number of sessions that accepted it.
func (b *Broadcaster) SendToTrackers(entityID uint32, data []byte) int {
	sent := 0
	for _, s := range b.registry.Trackers(entityID) {
		if err := s.Send(data); err != nil {
			slog.Debug("send to tracker failed", "objectID", entityID, "remote", s.Remote(), "error", err)
			continue
		}
		sent++
	}
	return sent
}

// BroadcastToAll queues data for every connected session.
func (b *Broadcaster) BroadcastToAll(data []byte) int {
	sent := 0
	for _, s := range b.registry.Sessions() {
		if err := s.Send(data); err != nil {
			slog.Debug("broadcast failed", "remote", s.Remote(), "error", err)
			continue
		}
		sent++
	}
	return sent
}
