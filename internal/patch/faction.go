package patch

import (
	"fmt"
	"strings"

	"github.com/udisondev/mobpatch/internal/model"
)

// Faction groups mobs that do not attack each other.
type Faction int8

const (
	FactionNeutral Faction = iota
	FactionUndead
	FactionIllager
	FactionVillager
	FactionPiglin
	FactionAnimal
)

// String returns the faction name as used in config files and the database.
func (f Faction) String() string {
	switch f {
	case FactionNeutral:
		return "neutral"
	case FactionUndead:
		return "undead"
	case FactionIllager:
		return "illager"
	case FactionVillager:
		return "villager"
	case FactionPiglin:
		return "piglin"
	case FactionAnimal:
		return "animal"
	default:
		return "unknown"
	}
}

// ParseFaction parses a faction name (case-insensitive).
func ParseFaction(s string) (Faction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "neutral":
		return FactionNeutral, nil
	case "undead":
		return FactionUndead, nil
	case "illager":
		return FactionIllager, nil
	case "villager":
		return FactionVillager, nil
	case "piglin":
		return FactionPiglin, nil
	case "animal":
		return FactionAnimal, nil
	default:
		return FactionNeutral, fmt.Errorf("unknown faction %q", s)
	}
}

// FactionPolicy is the fallback used when faction membership does not decide.
type FactionPolicy interface {
	IsTeammate(self, other *model.LivingEntity) bool
	AttackDirectionPitch(self *model.LivingEntity, partialTick float32) float32
}

// BasePolicy: teammates share a team label; pitch follows the entity's own view.
type BasePolicy struct{}

// IsTeammate implements FactionPolicy.
func (BasePolicy) IsTeammate(self, other *model.LivingEntity) bool {
	return self.IsAlliedTo(other)
}

// AttackDirectionPitch implements FactionPolicy.
// Looking up bends the torso back quadratically; capped to the same ±30°.
func (BasePolicy) AttackDirectionPitch(self *model.LivingEntity, partialTick float32) float32 {
	pitch := -self.ViewXRot(partialTick)
	correct := pitch * pitch / 30
	if pitch < 0 {
		correct = -correct
	}
	return clampPitch(correct)
}
