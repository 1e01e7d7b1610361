// Package services contains stateless domain services that work across
// aggregates: fee calculation, agent selection for new deliveries, and
// recomputation of agent performance counters.
package services
