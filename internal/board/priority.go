package board

import "math"

// UrgencyFloor is the urgency assigned to overdue or deadline-less tasks.
// It must strictly exceed 1/h for any deadline of 1000 hours or more, so
// overdue work always floats above far-future work. The plain literal 0.001
// and the computed 1/1000 are the same float64, which would tie; nudging the
// floor one ulp up keeps the comparison strict.
var UrgencyFloor = math.Nextafter(0.001, 1)

// Urgency converts hours-until-deadline into deadline pressure. A finite,
// positive horizon maps to its reciprocal; anything else (overdue, missing,
// NaN, infinite) maps to UrgencyFloor.
func Urgency(hoursUntilDeadline float64) float64 {
	if math.IsNaN(hoursUntilDeadline) || math.IsInf(hoursUntilDeadline, 0) || hoursUntilDeadline <= 0 {
		return UrgencyFloor
	}
	return 1 / hoursUntilDeadline
}

// ComputePriority maps a task's raw attributes to its computed priority:
//
//	(importance x urgency) / effort
//
// Higher importance and tighter deadlines raise priority; higher effort
// dampens it. The function is total: invalid inputs degrade to defaults and
// the result is always finite and non-negative. Priorities are relative and
// unbounded above; presentation layers clamp for display only.
func ComputePriority(t Task) float64 {
	importance := t.Importance
	if math.IsNaN(importance) {
		importance = DefaultImportance
	}

	effort := t.Effort
	if math.IsNaN(effort) || effort <= 0 {
		effort = DefaultEffort
	}

	p := importance * Urgency(t.HoursUntilDeadline) / effort
	if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
		return 0
	}
	return p
}
