package team

import (
	"github.com/riskibarqy/futball/internal/domain/errs"
	"github.com/riskibarqy/futball/internal/platform/validation"
)

// Team is a club. Name is unique across the store.
type Team struct {
	ID      int64
	Name    string `validate:"required,max=200"`
	Country string `validate:"max=100"`
}

func (t Team) Validate() error {
	if err := validation.Struct("team", t); err != nil {
		return errs.Input("%v", err)
	}
	return nil
}
