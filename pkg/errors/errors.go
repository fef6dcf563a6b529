// Package errors registers the error kinds surfaced by skycalc. Callers wrap
// them with Wrap/Wrapf and test them with the standard library errors.Is.
package errors

import (
	errorsmod "cosmossdk.io/errors"
)

// Codespace groups every skycalc error.
const Codespace = "skycalc"

var (
	// ErrConfiguration is returned for invalid formula arguments (zero distance,
	// period or wavelength) and for unknown calculation domains.
	ErrConfiguration = errorsmod.Register(Codespace, 2, "configuration error")

	// ErrDatasetNotFound is returned when a dataset name is not in the registry.
	ErrDatasetNotFound = errorsmod.Register(Codespace, 3, "dataset not found")

	// ErrNoApplicableDomains is returned when a run has nothing to compute.
	ErrNoApplicableDomains = errorsmod.Register(Codespace, 4, "no applicable calculation domains")

	// ErrInvalidTable is returned for malformed tables.
	ErrInvalidTable = errorsmod.Register(Codespace, 5, "invalid table")
)

// Wrap annotates err with a message.
func Wrap(err error, description string) error {
	return errorsmod.Wrap(err, description)
}

// Wrapf annotates err with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errorsmod.Wrapf(err, format, args...)
}
