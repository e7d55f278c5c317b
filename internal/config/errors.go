package config

import (
	"errors"
	"fmt"
)

// ValidationError reports a user-supplied option value that violates its
// domain constraint.
type ValidationError struct {
	Flag   string
	Value  string
	Reason string
	// Origin names where the value came from when it was not the flag,
	// e.g. "$STEW_JPEG_QUALITY".
	Origin string
}

func (e *ValidationError) Error() string {
	origin := e.Origin
	if origin == "" {
		origin = "--" + e.Flag
	}
	return fmt.Sprintf("invalid value %q for %s: %s", e.Value, origin, e.Reason)
}

// Attribute points a JPEG quality validation error at the environment
// variable or config file key it came from. Other errors, and values that
// came from the flag, are returned unchanged.
func (s Sources) Attribute(err error, configPath string) error {
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Flag != "jpeg-encoding-quality" {
		return err
	}
	attributed := *verr
	switch s.JPEGQuality {
	case SourceEnv:
		attributed.Origin = "$" + EnvJPEGQuality
	case SourceFile:
		attributed.Origin = "jpeg_quality in " + configPath
	default:
		return err
	}
	return &attributed
}
