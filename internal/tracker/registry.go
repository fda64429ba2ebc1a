package tracker

import "sync"

// Registry maps tracked entities to the observer sessions that follow them.
// Thread-safe.
type Registry struct {
	mu       sync.RWMutex
	sessions map[*Session]map[uint32]struct{}
	trackers map[uint32]map[*Session]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[*Session]map[uint32]struct{}, 16),
		trackers: make(map[uint32]map[*Session]struct{}, 256),
	}
}

// AddSession registers a connected observer with no tracked entities.
func (r *Registry) AddSession(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[s]; !ok {
		r.sessions[s] = make(map[uint32]struct{})
	}
}

// RemoveSession drops s and every track it holds.
func (r *Registry) RemoveSession(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for entityID := range r.sessions[s] {
		r.untrackLocked(entityID, s)
	}
	delete(r.sessions, s)
}

// Track makes s a tracker of entityID. Unknown sessions are added.
func (r *Registry) Track(entityID uint32, s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tracked, ok := r.sessions[s]
	if !ok {
		tracked = make(map[uint32]struct{})
		r.sessions[s] = tracked
	}
	tracked[entityID] = struct{}{}

	set, ok := r.trackers[entityID]
	if !ok {
		set = make(map[*Session]struct{}, 4)
		r.trackers[entityID] = set
	}
	set[s] = struct{}{}
}

// Untrack stops s tracking entityID.
func (r *Registry) Untrack(entityID uint32, s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.untrackLocked(entityID, s)
}

func (r *Registry) untrackLocked(entityID uint32, s *Session) {
	if tracked, ok := r.sessions[s]; ok {
		delete(tracked, entityID)
	}
	set, ok := r.trackers[entityID]
	if !ok {
		return
	}
	delete(set, s)
	if len(set) == 0 {
		delete(r.trackers, entityID)
	}
}

// ForgetEntity drops every track of entityID (entity left the world).
func (r *Registry) ForgetEntity(entityID uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for s := range r.trackers[entityID] {
		delete(r.sessions[s], entityID)
	}
	delete(r.trackers, entityID)
}

// IsTracking reports whether s tracks entityID.
func (r *Registry) IsTracking(entityID uint32, s *Session) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.trackers[entityID][s]
	return ok
}

// Trackers returns a snapshot of sessions tracking entityID.
func (r *Registry) Trackers(entityID uint32) []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set := r.trackers[entityID]
	if len(set) == 0 {
		return nil
	}
	out := make([]*Session, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	return out
}

// Sessions returns a snapshot of all connected sessions.
func (r *Registry) Sessions() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Session, 0, len(r.sessions))
	for s := range r.sessions {
		out = append(out, s)
	}
	return out
}

// SessionCount returns the number of connected sessions.
func (r *Registry) SessionCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
