package summary

import (
	"fmt"
	"sort"

	"github.com/javiermolinar/schedwidget/internal/schedule"
)

// Overlap reports two activities of the same day whose time ranges
// intersect. Parallel sessions are allowed, so overlaps are warnings.
type Overlap struct {
	DayID  string
	First  schedule.Activity
	Second schedule.Activity
}

func (o Overlap) String() string {
	return fmt.Sprintf("%s: %q (%s-%s) overlaps %q (%s-%s)",
		o.DayID, o.Second.Title, o.Second.StartTime, o.Second.EndTime,
		o.First.Title, o.First.StartTime, o.First.EndTime)
}

// Overlaps lists intersecting activities per day, ordered by start time.
// Activities without an end time occupy no range and never overlap.
func Overlaps(doc *schedule.Document) []Overlap {
	var out []Overlap
	for _, day := range doc.Days {
		ranged := make([]schedule.Activity, 0, len(day.Activities))
		for _, a := range day.Activities {
			if a.EndTime != "" && a.EndTime > a.StartTime {
				ranged = append(ranged, a)
			}
		}
		// Sort by start time for consistent reporting
		sort.SliceStable(ranged, func(i, j int) bool {
			return ranged[i].StartTime < ranged[j].StartTime
		})

		for i := 0; i < len(ranged); i++ {
			for j := i + 1; j < len(ranged); j++ {
				if timesOverlap(ranged[i].StartTime, ranged[i].EndTime, ranged[j].StartTime, ranged[j].EndTime) {
					out = append(out, Overlap{DayID: day.ID, First: ranged[i], Second: ranged[j]})
				}
			}
		}
	}
	return out
}

// timesOverlap checks if two HH:MM ranges overlap. Touching ranges do not.
func timesOverlap(start1, end1, start2, end2 string) bool {
	return start1 < end2 && start2 < end1
}
