package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-04-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-04-01", d.String())

	_, err = ParseDate("01/04/2024")
	assert.Error(t, err)
	_, err = ParseDate("2024-13-40")
	assert.Error(t, err)
}

func TestDateWireFormat(t *testing.T) {
	encoded, err := json.Marshal(NewDate(2024, time.April, 1))
	require.NoError(t, err)
	assert.Equal(t, `"2024-04-01"`, string(encoded))

	var session AcademicSession
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"name":"2024-2025","startDate":"2024-04-01","endDate":"2025-03-31"}`), &session))
	assert.Equal(t, "2024-04-01", session.StartDate.String())
	assert.Equal(t, "2025-03-31", session.EndDate.String())

	var d Date
	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())
}

func TestSessionRequestValidate(t *testing.T) {
	valid := SessionRequest{
		Name:      "2024-2025",
		StartDate: NewDate(2024, time.April, 1),
		EndDate:   NewDate(2025, time.March, 31),
	}
	assert.NoError(t, valid.Validate(nil))

	missingName := valid
	missingName.Name = ""
	assert.Error(t, missingName.Validate(nil))

	missingDates := SessionRequest{Name: "2024-2025"}
	assert.Error(t, missingDates.Validate(nil))

	sameDay := valid
	sameDay.EndDate = sameDay.StartDate
	assert.Error(t, sameDay.Validate(nil), "start must be strictly before end")

	backwards := valid
	backwards.StartDate, backwards.EndDate = backwards.EndDate, backwards.StartDate
	assert.Error(t, backwards.Validate(nil))
}
