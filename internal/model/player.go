package model

// Player is a living entity controlled by a remote client.
type Player struct {
	*LivingEntity

	accountName string
}

// NewPlayer creates a player at pos.
func NewPlayer(objectID uint32, accountName, name string, pos Vec3) *Player {
	return &Player{
		LivingEntity: NewLivingEntity(objectID, name, pos, 20, 1.62),
		accountName:  accountName,
	}
}

// AccountName returns the owning account.
func (p *Player) AccountName() string {
	return p.accountName
}
