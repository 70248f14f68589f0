package model

import "github.com/pkg/errors"

var (
	// ErrInvalidDimension is returned when a grid is constructed with a non-positive size
	ErrInvalidDimension = errors.New("invalid dimension")
	// ErrInvalidArgument is returned for out-of-range arguments such as a live probability outside [0, 1]
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrOutOfRange is returned for cell coordinates outside the grid
	ErrOutOfRange = errors.New("out of range")
)
