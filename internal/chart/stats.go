package chart

// Statistics are the dashboard chip counts derived from an aggregated
// chart. All counts are deduplicated by record ID, cost totals
// included: a procedure spanning three teeth is one procedure and one
// cost.
type Statistics struct {
	TotalVisits        int     `json:"total_visits"`
	CompletedVisits    int     `json:"completed_visits"`
	TeethWithData      int     `json:"teeth_with_data"`
	TotalObservations  int     `json:"total_observations"`
	TotalProcedures    int     `json:"total_procedures"`
	EstimatedCostTotal float64 `json:"estimated_cost_total"`
	ActualCostTotal    float64 `json:"actual_cost_total"`
}

// Stats computes chart statistics from the two aggregations. Visits
// already hold each record exactly once, so counts and cost totals
// come from them; TeethWithData comes from the summaries.
func Stats(visits []Visit, summaries []ToothSummary) Statistics {
	stats := Statistics{
		TotalVisits:   len(visits),
		TeethWithData: len(summaries),
	}

	for _, v := range visits {
		if v.Status == VisitStatusCompleted {
			stats.CompletedVisits++
		}
		stats.TotalObservations += len(v.Observations)
		stats.TotalProcedures += len(v.Procedures)
		for _, p := range v.Procedures {
			if p.EstimatedCost != nil {
				stats.EstimatedCostTotal += *p.EstimatedCost
			}
			if p.ActualCost != nil {
				stats.ActualCostTotal += *p.ActualCost
			}
		}
	}

	return stats
}
