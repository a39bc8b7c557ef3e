package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/sailcheck/internal/model"
)

func TestJSONSerializerRevivesTimestamps(t *testing.T) {
	done := time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC)
	in := []model.Checklist{{
		ID:              "c1",
		Name:            "Arrival",
		Category:        model.CategoryArrival,
		IsActive:        true,
		CreatedAt:       done.Add(-time.Hour),
		UpdatedAt:       done,
		LastCompletedAt: &done,
		Tasks: []model.Task{{
			ID:          "t1",
			Title:       "Fenders out",
			Status:      model.TaskStatusCompleted,
			Priority:    model.TaskPriorityHigh,
			Order:       1,
			CompletedAt: &done,
		}},
	}}

	data, err := JSONSerializer{}.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, data, `"version":1`)
	assert.Contains(t, data, `"last_completed_at":"2025-06-02T14:30:00Z"`)

	out, err := JSONSerializer{}.Unmarshal(data)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.NotNil(t, out[0].LastCompletedAt)
	assert.True(t, done.Equal(*out[0].LastCompletedAt))
	require.NotNil(t, out[0].Tasks[0].CompletedAt)
	assert.True(t, done.Equal(*out[0].Tasks[0].CompletedAt))
}

func TestJSONSerializerUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    int
		wantErr bool
	}{
		{name: "empty collection", data: `{"version":1,"checklists":[]}`, want: 0},
		{name: "missing collection", data: `{"version":1}`, want: 0},
		{name: "missing tasks", data: `{"version":1,"checklists":[{"id":"a","name":"A"}]}`, want: 1},
		{name: "future version", data: `{"version":2,"checklists":[]}`, wantErr: true},
		{name: "garbage", data: `not json`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := JSONSerializer{}.Unmarshal(tt.data)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Len(t, got, tt.want)
			for _, c := range got {
				assert.NotNil(t, c.Tasks)
			}
		})
	}
}

func TestJSONSerializerMarshalNil(t *testing.T) {
	data, err := JSONSerializer{}.Marshal(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":1,"checklists":[]}`, data)
}
