package domain

import "errors"

// Common errors returned by repositories and services.
// Expected-absent lookups do not use these: they return a nil result instead.
var (
	// ErrConstraint wraps engine-level constraint violations (unique currency
	// code, dangling foreign key) so callers can tell them from I/O failures.
	ErrConstraint = errors.New("constraint violation")

	// ErrValidation wraps domain rule violations reported by Validate methods
	ErrValidation = errors.New("validation failed")

	// ErrMissingDataSource is returned by the recording workflow when a newly
	// created asset has no data source and the input carries no choice.
	ErrMissingDataSource = errors.New("asset has no data source and no data source choice was provided")

	// ErrInvalidAttachTarget is returned when a data-source attach target is
	// neither the asset nor the asset market.
	ErrInvalidAttachTarget = errors.New("data source attach target must be \"asset\" or \"asset market\"")
)
