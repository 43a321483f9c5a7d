package usecase

import (
	"errors"

	"github.com/riskibarqy/futball/internal/domain/errs"
)

var (
	ErrInvalidInput          = errs.ErrInput
	ErrReferential           = errs.ErrReferential
	ErrDuplicateKey          = errs.ErrDuplicateKey
	ErrNotFound              = errs.ErrNotFound
	ErrTransaction           = errs.ErrTransaction
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
