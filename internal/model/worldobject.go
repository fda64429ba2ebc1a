package model

import "sync"

// WorldObject — базовый класс для всех объектов симуляции.
// Хранит ObjectID, Name и позицию текущего и предыдущего тика
// (предыдущая нужна для интерполяции между тиками).
type WorldObject struct {
	objectID uint32
	name     string
	position Vec3
	prevPos  Vec3

	mu sync.RWMutex
}

// NewWorldObject создаёт новый объект в симуляции.
func NewWorldObject(objectID uint32, name string, pos Vec3) *WorldObject {
	return &WorldObject{
		objectID: objectID,
		name:     name,
		position: pos,
		prevPos:  pos,
	}
}

// ObjectID возвращает уникальный ID объекта (immutable после создания).
func (w *WorldObject) ObjectID() uint32 {
	return w.objectID
}

// Name возвращает имя объекта.
func (w *WorldObject) Name() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.name
}

// SetName устанавливает имя объекта.
func (w *WorldObject) SetName(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.name = name
}

// Position возвращает позицию текущего тика.
func (w *WorldObject) Position() Vec3 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.position
}

// PrevPosition возвращает позицию предыдущего тика.
func (w *WorldObject) PrevPosition() Vec3 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.prevPos
}

// MoveTo sets a new position and remembers the old one as the previous tick position.
func (w *WorldObject) MoveTo(pos Vec3) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.prevPos = w.position
	w.position = pos
}

// SetPosition sets the current position within a tick; the previous tick
// position is kept.
func (w *WorldObject) SetPosition(pos Vec3) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.position = pos
}

// BeginTick remembers the current position as the previous tick position.
func (w *WorldObject) BeginTick() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.prevPos = w.position
}

// Teleport sets the position without interpolation (previous = current).
func (w *WorldObject) Teleport(pos Vec3) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.prevPos = pos
	w.position = pos
}

// InterpolatedPosition returns the position at a fraction between the previous
// tick (0) and the current tick (1).
func (w *WorldObject) InterpolatedPosition(partialTick float64) Vec3 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.prevPos.Lerp(w.position, partialTick)
}
