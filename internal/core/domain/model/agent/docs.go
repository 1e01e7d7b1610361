// Package agent contains the DeliveryAgent aggregate: courier identity,
// availability and status, vehicle and location data, ZIP coverage claims,
// and derived performance counters.
package agent
