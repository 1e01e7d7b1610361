// Package kernel contains shared value objects used across the dispatch
// domain: entity identifiers (UUID) and geographic coordinates (GeoPoint).
// All kernel types are immutable and constructor-validated.
package kernel
