package export

import (
	"github.com/taleemtrack/taleemtrack-cli/internal/models"
)

// Dataset defines tabular export content with rows in column order.
type Dataset struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// SessionsDataset flattens the academic-session collection for export,
// preserving server order.
func SessionsDataset(sessions []models.AcademicSession) Dataset {
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		current := ""
		if s.IsCurrent {
			current = "yes"
		}
		rows = append(rows, []string{
			s.Name,
			s.StartDate.String(),
			s.EndDate.String(),
			current,
		})
	}
	return Dataset{
		Title:   "Academic Sessions",
		Headers: []string{"Name", "Start Date", "End Date", "Current"},
		Rows:    rows,
	}
}
