package tui

import "fmt"

// wrapErr prefixes err with what the app was doing, e.g. opening the map.
// A nil err stays nil so callers can wrap unconditionally.
func wrapErr(action string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", action, err)
}
