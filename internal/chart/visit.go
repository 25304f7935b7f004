package chart

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/dentalops/dental-admin-api/internal/model"
)

// ToothRecord is one chart entry: a tooth and the raw records attached
// to it. A multi-tooth procedure appears under each of its teeth; the
// aggregators deduplicate by record ID.
type ToothRecord struct {
	ToothNumber  string              `json:"tooth_number"`
	Observations []model.Observation `json:"observations"`
	Procedures   []model.Procedure   `json:"procedures"`
}

// VisitStatus is the derived status of a visit. Visits carry a
// narrower 3-state domain than teeth; the asymmetry with ToothStatus
// is deliberate and preserved.
type VisitStatus string

const (
	VisitStatusPlanned    VisitStatus = "planned"
	VisitStatusInProgress VisitStatus = "in_progress"
	VisitStatusCompleted  VisitStatus = "completed"
)

// Visit is a derived grouping of records sharing an appointment, or
// sharing a calendar day when no appointment is recorded. It is never
// persisted.
type Visit struct {
	Key          string              `json:"key"`
	Date         time.Time           `json:"date"`
	Teeth        []string            `json:"teeth"`
	Observations []model.Observation `json:"observations"`
	Procedures   []model.Procedure   `json:"procedures"`
	Notes        []string            `json:"notes"`
	Status       VisitStatus         `json:"status"`
}

const dayKeyFormat = "2006-01-02"

type visitAccumulator struct {
	visits   map[string]*Visit
	order    map[string]int
	seenObs  map[uuid.UUID]struct{}
	seenProc map[uuid.UUID]struct{}
	teeth    map[string]map[string]struct{}
	skipped  int
}

// AggregateVisits groups a chart's raw records into visit summaries,
// most recent first. Records attached to several teeth are counted
// once. Records without an ID or creation timestamp cannot be grouped
// deterministically and are skipped; SkippedRecords reports how many.
func AggregateVisits(teeth []ToothRecord) []Visit {
	visits, _ := aggregateVisits(teeth)
	return visits
}

// AggregateVisitsStrict behaves like AggregateVisits but also returns
// the number of records skipped for missing identity or timestamp so
// callers can surface the data problem.
func AggregateVisitsStrict(teeth []ToothRecord) ([]Visit, int) {
	return aggregateVisits(teeth)
}

func aggregateVisits(teeth []ToothRecord) ([]Visit, int) {
	acc := &visitAccumulator{
		visits:   make(map[string]*Visit),
		order:    make(map[string]int),
		seenObs:  make(map[uuid.UUID]struct{}),
		seenProc: make(map[uuid.UUID]struct{}),
		teeth:    make(map[string]map[string]struct{}),
	}

	for _, tooth := range teeth {
		for _, obs := range tooth.Observations {
			acc.foldObservation(tooth.ToothNumber, obs)
		}
		for _, proc := range tooth.Procedures {
			acc.foldProcedure(proc)
		}
	}

	out := make([]Visit, 0, len(acc.visits))
	for _, v := range acc.visits {
		out = append(out, *v)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return acc.order[out[i].Key] < acc.order[out[j].Key]
	})
	return out, acc.skipped
}

func (acc *visitAccumulator) foldObservation(tooth string, obs model.Observation) {
	if obs.ID == uuid.Nil || obs.CreatedAt.IsZero() {
		acc.skipped++
		return
	}
	if _, ok := acc.seenObs[obs.ID]; ok {
		return
	}
	acc.seenObs[obs.ID] = struct{}{}

	v := acc.getOrCreate(visitKey(obs.AppointmentID, obs.CreatedAt), obs.CreatedAt)
	acc.addTooth(v, tooth)
	v.Observations = append(v.Observations, obs)
	if obs.Notes != "" {
		v.Notes = append(v.Notes, fmt.Sprintf("#%s: %s", tooth, obs.Notes))
	}
}

func (acc *visitAccumulator) foldProcedure(proc model.Procedure) {
	if proc.ID == uuid.Nil || proc.CreatedAt.IsZero() {
		acc.skipped++
		return
	}
	if _, ok := acc.seenProc[proc.ID]; ok {
		return
	}
	acc.seenProc[proc.ID] = struct{}{}

	v := acc.getOrCreate(visitKey(proc.AppointmentID, proc.CreatedAt), proc.CreatedAt)
	for _, tooth := range proc.TeethList() {
		acc.addTooth(v, tooth)
	}
	v.Procedures = append(v.Procedures, proc)
	if proc.Notes != "" {
		v.Notes = append(v.Notes, fmt.Sprintf("Procedure: %s", proc.Notes))
	}

	// Visit status resolves incrementally and completion is sticky: a
	// single completed procedure marks the whole visit completed.
	switch proc.Status {
	case model.ProcedureStatusCompleted:
		v.Status = VisitStatusCompleted
	case model.ProcedureStatusInProgress:
		if v.Status != VisitStatusCompleted {
			v.Status = VisitStatusInProgress
		}
	}
}

func (acc *visitAccumulator) getOrCreate(key string, createdAt time.Time) *Visit {
	if v, ok := acc.visits[key]; ok {
		return v
	}
	v := &Visit{
		Key:    key,
		Date:   createdAt,
		Status: VisitStatusPlanned,
	}
	acc.visits[key] = v
	acc.order[key] = len(acc.order)
	acc.teeth[key] = make(map[string]struct{})
	return v
}

func (acc *visitAccumulator) addTooth(v *Visit, tooth string) {
	set := acc.teeth[v.Key]
	if _, ok := set[tooth]; ok {
		return
	}
	set[tooth] = struct{}{}
	v.Teeth = append(v.Teeth, tooth)
}

// visitKey groups by appointment when one is recorded, otherwise by
// the record's calendar day.
func visitKey(appointmentID *uuid.UUID, createdAt time.Time) string {
	if appointmentID != nil && *appointmentID != uuid.Nil {
		return appointmentID.String()
	}
	return createdAt.Format(dayKeyFormat)
}
