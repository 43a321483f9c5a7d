package competition

import (
	"github.com/riskibarqy/futball/internal/domain/errs"
	"github.com/riskibarqy/futball/internal/platform/validation"
)

// Competition is a league or cup, identified by its exact name.
type Competition struct {
	ID      int64
	Name    string `validate:"required,max=200"`
	Country string `validate:"max=100"`
}

func (c Competition) Validate() error {
	if err := validation.Struct("competition", c); err != nil {
		return errs.Input("%v", err)
	}
	return nil
}
