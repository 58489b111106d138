package renderer

import "github.com/pkg/errors"

var (
	ErrInvalidResolution = errors.New("renderer: width and height must be positive")
	ErrInvalidSamples    = errors.New("renderer: samples per pixel must be positive")
	ErrNoCamera          = errors.New("renderer: no camera defined")
	ErrNoIntegrator      = errors.New("renderer: no integrator defined")
)
