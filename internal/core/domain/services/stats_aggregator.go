package services

import (
	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/delivery"
)

// StatsAggregator recomputes an agent's performance counters from the full
// delivery and rating history.
//
// Recomputation is deliberately not incremental: every terminal delivery
// event and every new rating triggers a fresh pass over the history, which
// keeps the counters self-healing at the cost of O(n) per event. Callers
// serialize recomputations per agent (row lock) so concurrent completions
// cannot overwrite each other's aggregates with stale snapshots.
type StatsAggregator struct{}

// NewStatsAggregator creates a stats aggregator.
func NewStatsAggregator() StatsAggregator {
	return StatsAggregator{}
}

// Aggregate derives the counters from the agent's delivery history and the
// ratings given to those deliveries:
//
//   - total deliveries: all deliveries for the agent
//   - successful deliveries: those that reached Delivered
//   - failed deliveries: those that reached Failed or Cancelled
//   - total earnings: sum of agent payouts over delivered deliveries
//   - average rating: arithmetic mean of rating values, rounded to two
//     decimal places, 0 when no ratings exist
func (s StatsAggregator) Aggregate(
	deliveries []*delivery.Delivery, ratings []*delivery.Rating,
) agent.Stats {
	stats := agent.Stats{
		TotalDeliveries: len(deliveries),
	}

	var earnings float64
	for _, d := range deliveries {
		switch d.Status() {
		case delivery.StatusDelivered:
			stats.SuccessfulDeliveries++
			earnings += d.AgentPayout()
		case delivery.StatusFailed, delivery.StatusCancelled:
			stats.FailedDeliveries++
		default:
		}
	}
	stats.TotalEarnings = round2(earnings)

	if len(ratings) > 0 {
		var sum int
		for _, r := range ratings {
			sum += r.Value()
		}
		stats.AverageRating = round2(float64(sum) / float64(len(ratings)))
	}

	return stats
}
