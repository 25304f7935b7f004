package chart

import (
	"strconv"
)

// FDI two-digit tooth numbering: the first digit is the quadrant, the
// second the position within it. Quadrants 1-4 are the permanent
// dentition (positions 1-8), quadrants 5-8 the primary dentition
// (positions 1-5).

// Dentition identifies which tooth set a chart renders.
type Dentition string

const (
	DentitionPermanent Dentition = "permanent"
	DentitionPrimary   Dentition = "primary"
)

// PermanentQuadrants holds the canonical ordered tooth numbers per
// quadrant (upper right, upper left, lower left, lower right).
var PermanentQuadrants = [4][]string{
	{"11", "12", "13", "14", "15", "16", "17", "18"},
	{"21", "22", "23", "24", "25", "26", "27", "28"},
	{"31", "32", "33", "34", "35", "36", "37", "38"},
	{"41", "42", "43", "44", "45", "46", "47", "48"},
}

// PrimaryQuadrants holds the deciduous teeth in the same quadrant order.
var PrimaryQuadrants = [4][]string{
	{"51", "52", "53", "54", "55"},
	{"61", "62", "63", "64", "65"},
	{"71", "72", "73", "74", "75"},
	{"81", "82", "83", "84", "85"},
}

// QuadrantTeeth returns the ordered tooth numbers for the given
// dentition, quadrant by quadrant.
func QuadrantTeeth(d Dentition) [4][]string {
	if d == DentitionPrimary {
		return PrimaryQuadrants
	}
	return PermanentQuadrants
}

// IsValidToothNumber reports whether s is a valid FDI tooth number in
// either dentition. Validation is advisory at the aggregation layer:
// an invalid number still passes through for display.
func IsValidToothNumber(s string) bool {
	n, err := strconv.Atoi(s)
	if err != nil {
		return false
	}

	quadrant := n / 10
	position := n % 10

	switch {
	case quadrant >= 1 && quadrant <= 4:
		return position >= 1 && position <= 8
	case quadrant >= 5 && quadrant <= 8:
		return position >= 1 && position <= 5
	default:
		return false
	}
}

// Quadrant returns the FDI quadrant digit of a tooth number, or 0 when
// the number is not valid.
func Quadrant(tooth string) int {
	if !IsValidToothNumber(tooth) {
		return 0
	}
	n, _ := strconv.Atoi(tooth)
	return n / 10
}

// IsUpperArch reports whether the tooth sits in the upper arch
// (quadrants 1, 2, 5 and 6).
func IsUpperArch(tooth string) bool {
	switch Quadrant(tooth) {
	case 1, 2, 5, 6:
		return true
	default:
		return false
	}
}

// IsPrimaryTooth reports whether the tooth belongs to the primary
// (deciduous) dentition.
func IsPrimaryTooth(tooth string) bool {
	q := Quadrant(tooth)
	return q >= 5 && q <= 8
}

// ConditionTypes is the clinical finding vocabulary. The set is a
// shared contract with the API validator and must stay in lockstep
// with it.
var ConditionTypes = []string{
	"Cavity",
	"Decay",
	"Fracture",
	"Crack",
	"Discoloration",
	"Wear",
	"Erosion",
	"Abscess",
	"Gum Disease",
	"Root Exposure",
	"Sensitivity",
	"Missing",
	"Impacted",
	"Other",
}

// Surfaces lists the valid tooth surfaces for an observation.
var Surfaces = []string{
	"Occlusal",
	"Mesial",
	"Distal",
	"Buccal",
	"Lingual",
	"Palatal",
	"Incisal",
}

// Severities lists the valid observation severities.
var Severities = []string{"Mild", "Moderate", "Severe"}

func IsValidConditionType(s string) bool {
	return contains(ConditionTypes, s)
}

func IsValidSurface(s string) bool {
	return contains(Surfaces, s)
}

func IsValidSeverity(s string) bool {
	return contains(Severities, s)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
