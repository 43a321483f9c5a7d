package player

import (
	"github.com/riskibarqy/futball/internal/domain/errs"
	"github.com/riskibarqy/futball/internal/platform/validation"
)

const (
	DefaultMinuteOn  = 0
	DefaultMinuteOff = 90
)

// Player is identified by the vendor's external id.
type Player struct {
	ID         int64
	ExternalID string `validate:"required,max=100"`
	Name       string `validate:"required,max=200"`
	TeamID     int64  `validate:"gte=0"`
	Position   string `validate:"max=100"`
}

func (p Player) Validate() error {
	if err := validation.Struct("player", p); err != nil {
		return errs.Input("%v", err)
	}
	return nil
}

// Appearance records one player in one match; (player, match) is unique.
type Appearance struct {
	PlayerID  int64 `validate:"gt=0"`
	MatchID   int64 `validate:"gt=0"`
	TeamID    int64 `validate:"gt=0"`
	IsStarter bool
	MinuteOn  int `validate:"gte=0"`
	MinuteOff int `validate:"gtefield=MinuteOn"`
}

func (a Appearance) Validate() error {
	if err := validation.Struct("player appearance", a); err != nil {
		return errs.Input("%v", err)
	}
	return nil
}
