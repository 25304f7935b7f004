package chart

// View-model glue for chart rendering: expansion and selection are
// plain owned UI state, never read by the aggregation functions.

// ExpansionSet tracks which visit or tooth cards are expanded.
type ExpansionSet map[string]struct{}

func NewExpansionSet() ExpansionSet {
	return make(ExpansionSet)
}

// Toggle flips membership and reports whether the id is expanded
// afterwards.
func (s ExpansionSet) Toggle(id string) bool {
	if _, ok := s[id]; ok {
		delete(s, id)
		return false
	}
	s[id] = struct{}{}
	return true
}

func (s ExpansionSet) Expanded(id string) bool {
	_, ok := s[id]
	return ok
}

func (s ExpansionSet) Clear() {
	for id := range s {
		delete(s, id)
	}
}

// SelectionMode controls tooth picking when authoring records.
type SelectionMode int

const (
	SelectSingle SelectionMode = iota
	SelectMulti
)

// ToothSelection is the transient picked-teeth state of the chart
// widget, preserving order of first selection.
type ToothSelection struct {
	mode  SelectionMode
	teeth []string
}

func NewToothSelection(mode SelectionMode) *ToothSelection {
	return &ToothSelection{mode: mode}
}

// Toggle selects or deselects a tooth. In single mode a new selection
// replaces the previous one.
func (s *ToothSelection) Toggle(tooth string) {
	for i, t := range s.teeth {
		if t == tooth {
			s.teeth = append(s.teeth[:i], s.teeth[i+1:]...)
			return
		}
	}
	if s.mode == SelectSingle {
		s.teeth = s.teeth[:0]
	}
	s.teeth = append(s.teeth, tooth)
}

func (s *ToothSelection) Selected(tooth string) bool {
	for _, t := range s.teeth {
		if t == tooth {
			return true
		}
	}
	return false
}

// Teeth returns the selection in order of first selection.
func (s *ToothSelection) Teeth() []string {
	out := make([]string, len(s.teeth))
	copy(out, s.teeth)
	return out
}

// GridCell is one renderable tooth in the chart grid.
type GridCell struct {
	ToothNumber string          `json:"tooth_number"`
	Status      ToothStatus     `json:"status"`
	Category    DisplayCategory `json:"category"`
	Selected    bool            `json:"selected"`
	HasRecords  bool            `json:"has_records"`
}

// BuildGrid lays out the full dentition quadrant by quadrant, coloring
// teeth from their summaries. Teeth without records render healthy.
func BuildGrid(d Dentition, summaries []ToothSummary, selection *ToothSelection) [4][]GridCell {
	byTooth := make(map[string]ToothStatus, len(summaries))
	for _, s := range summaries {
		byTooth[s.ToothNumber] = s.OverallStatus
	}

	var grid [4][]GridCell
	for q, teeth := range QuadrantTeeth(d) {
		cells := make([]GridCell, 0, len(teeth))
		for _, tooth := range teeth {
			status, ok := byTooth[tooth]
			if !ok {
				status = StatusHealthy
			}
			cells = append(cells, GridCell{
				ToothNumber: tooth,
				Status:      status,
				Category:    status.DisplayCategory(),
				Selected:    selection != nil && selection.Selected(tooth),
				HasRecords:  ok,
			})
		}
		grid[q] = cells
	}
	return grid
}
