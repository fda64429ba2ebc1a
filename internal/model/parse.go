package model

import (
	"fmt"
	"strings"
)

// ParseCombatStyle parses a style name (case-insensitive).
func ParseCombatStyle(s string) (CombatStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "passive", "":
		return StylePassive, nil
	case "melee":
		return StyleMelee, nil
	case "ranged":
		return StyleRanged, nil
	default:
		return StylePassive, fmt.Errorf("unknown combat style %q", s)
	}
}

// ParseItemKind parses an item kind name (case-insensitive).
func ParseItemKind(s string) (ItemKind, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if name == "" {
		return ItemEmpty, nil
	}
	for k := ItemEmpty; k <= ItemFood; k++ {
		if k.String() == name {
			return k, nil
		}
	}
	return ItemEmpty, fmt.Errorf("unknown item kind %q", s)
}
