// Package config loads global attribute overrides from YAML or TOML files.
//
// An override file layers dataset-level attributes on top of the built-in
// CCAM global record, or replaces it entirely when replace_defaults is set:
//
//	replace_defaults: false
//	tracking_id: true
//	attributes:
//	  driving_model: EC-Earth3
//	  driving_experiment_name: SSP126
//	  nominal_resolution: 12km
//
// Text, integer, floating point and numeric list values are accepted.
// Integers that fit are stored as 32-bit ints, everything else as doubles.
package config
