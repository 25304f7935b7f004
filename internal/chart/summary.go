package chart

import (
	"sort"
	"strconv"

	"github.com/google/uuid"

	"github.com/dentalops/dental-admin-api/internal/model"
)

// ToothSummary is the per-tooth rollup: every record touching the
// tooth plus one overall status. Only teeth with at least one record
// get a summary.
type ToothSummary struct {
	ToothNumber   string              `json:"tooth_number"`
	Observations  []model.Observation `json:"observations"`
	Procedures    []model.Procedure   `json:"procedures"`
	OverallStatus ToothStatus         `json:"overall_status"`
}

// AggregateToothSummaries groups a chart's raw records by tooth,
// sorted by numeric tooth number ascending. A procedure spanning
// several teeth contributes to each tooth's summary but appears only
// once within any one summary.
func AggregateToothSummaries(teeth []ToothRecord) []ToothSummary {
	summaries := make([]ToothSummary, 0, len(teeth))

	for _, tooth := range teeth {
		seenObs := make(map[uuid.UUID]struct{})
		seenProc := make(map[uuid.UUID]struct{})
		summary := ToothSummary{ToothNumber: tooth.ToothNumber}

		for _, obs := range tooth.Observations {
			if obs.ID == uuid.Nil || obs.CreatedAt.IsZero() {
				continue
			}
			if _, ok := seenObs[obs.ID]; ok {
				continue
			}
			seenObs[obs.ID] = struct{}{}
			summary.Observations = append(summary.Observations, obs)
		}

		for _, proc := range tooth.Procedures {
			if proc.ID == uuid.Nil || proc.CreatedAt.IsZero() {
				continue
			}
			if _, ok := seenProc[proc.ID]; ok {
				continue
			}
			seenProc[proc.ID] = struct{}{}
			summary.Procedures = append(summary.Procedures, proc)
		}

		if len(summary.Observations) == 0 && len(summary.Procedures) == 0 {
			continue
		}

		summary.OverallStatus = ResolveToothStatus(summary.Observations, summary.Procedures)
		summaries = append(summaries, summary)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return toothLess(summaries[i].ToothNumber, summaries[j].ToothNumber)
	})
	return summaries
}

// toothLess orders numerically; tooth numbers that do not parse sort
// after the numeric ones, in string order.
func toothLess(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		return na < nb
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a < b
	}
}
