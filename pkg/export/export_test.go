package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taleemtrack/taleemtrack-cli/internal/models"
)

func sampleDataset() Dataset {
	return SessionsDataset([]models.AcademicSession{
		{ID: 1, Name: "2023-2024", StartDate: models.NewDate(2023, 4, 1), EndDate: models.NewDate(2024, 3, 31)},
		{ID: 2, Name: "2024-2025", StartDate: models.NewDate(2024, 4, 1), EndDate: models.NewDate(2025, 3, 31), IsCurrent: true},
	})
}

func TestSessionsDataset(t *testing.T) {
	data := sampleDataset()

	assert.Equal(t, "Academic Sessions", data.Title)
	assert.Equal(t, []string{"Name", "Start Date", "End Date", "Current"}, data.Headers)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, []string{"2023-2024", "2023-04-01", "2024-03-31", ""}, data.Rows[0])
	assert.Equal(t, []string{"2024-2025", "2024-04-01", "2025-03-31", "yes"}, data.Rows[1])
}

func TestCSVRender(t *testing.T) {
	rendered, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)

	content := string(rendered)
	assert.Contains(t, content, "Name,Start Date,End Date,Current")
	assert.Contains(t, content, "2024-2025,2024-04-01,2025-03-31,yes")
}

func TestCSVRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFRender(t *testing.T) {
	rendered, err := NewPDFExporter().Render(sampleDataset())
	require.NoError(t, err)

	require.NotEmpty(t, rendered)
	assert.Equal(t, "%PDF", string(rendered[:4]))
}
