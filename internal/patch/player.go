package patch

import (
	"github.com/udisondev/mobpatch/internal/model"
	"github.com/udisondev/mobpatch/internal/motion"
)

// PlayerPatch is the overlay of a player. Players have no AI and no native
// target field, so teammate and pitch checks go straight to the policy.
type PlayerPatch struct {
	*livingPatch

	player *model.Player
}

// NewPlayerPatch creates an overlay for player.
func NewPlayerPatch(player *model.Player) *PlayerPatch {
	return &PlayerPatch{
		livingPatch: newLivingPatch(player.LivingEntity),
		player:      player,
	}
}

// Player returns the patched player.
func (p *PlayerPatch) Player() *model.Player {
	return p.player
}

// OnJoinWorld binds the overlay to level.
func (p *PlayerPatch) OnJoinWorld(level Level) {
	p.setLevel(level)
}

// UpdateMotion resolves and publishes the player's motion.
func (p *PlayerPatch) UpdateMotion(considerInaction bool) motion.State {
	in := motion.InputFrom(p.entity, p.state.Inaction(), false)
	s := motion.Common{}.Resolve(in, considerInaction, nil)
	p.publish(s)
	return s
}

// IsTeammate implements EntityPatch.
func (p *PlayerPatch) IsTeammate(other *model.LivingEntity) bool {
	if other == nil {
		return false
	}
	return p.policy.IsTeammate(p.entity, other)
}

// AttackTarget implements EntityPatch.
func (p *PlayerPatch) AttackTarget() *model.LivingEntity {
	return nil
}

// AttackDirectionPitch implements EntityPatch.
func (p *PlayerPatch) AttackDirectionPitch(pc PresentationContext) float32 {
	return p.policy.AttackDirectionPitch(p.entity, partialTick(pc))
}
