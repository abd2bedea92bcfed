package sheets

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/semester-planner/internal/model"
	"github.com/Veraticus/semester-planner/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func testReport() service.PlanReport {
	return service.PlanReport{
		GeneratedAt: time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC),
		Major:       model.Major{ID: 1, Name: "Computer Science", Concentration: "Software Engineering"},
		Completed:   []string{"MATH 180", "CS 141"},
		Planned: []model.Course{
			{ID: "cs251", Code: "CS 251", Title: "Data Structures", Credits: 4, Level: 200, Difficulty: model.DifficultyModerate, Prerequisites: []string{"CS 141"}},
			{ID: "cs211", Code: "CS 211", Title: "Programming Practicum", Credits: 3, Level: 200, Difficulty: model.DifficultyEasy},
		},
		Eligible: []model.Course{
			{ID: "cs261", Code: "CS 261", Title: "Machine Organization", Credits: 4, Level: 200, Difficulty: model.DifficultyModerate, Prerequisites: []string{"CS 141"}},
		},
		TotalCredits: 7,
		Workload:     "0 challenging / 1 moderate / 1 easy",
	}
}

func TestBuildTabData(t *testing.T) {
	data := BuildTabData(testReport())

	plan := data.Tabs[TabPlan]
	require.Len(t, plan, 8)
	assert.Equal(t, courseHeader, plan[0])
	assert.Equal(t, []any{"CS 251", "Data Structures", 4, 200, "Moderate", "CS 141"}, plan[1])
	assert.Equal(t, []any{"CS 211", "Programming Practicum", 3, 200, "Easy", "None"}, plan[2])
	assert.Equal(t, []any{"Major", "Computer Science – Software Engineering"}, plan[4])
	assert.Equal(t, []any{"Total Credits", 7}, plan[5])
	assert.Equal(t, []any{"Workload", "0 challenging / 1 moderate / 1 easy"}, plan[6])
	assert.Equal(t, []any{"Generated", "2026-08-20 09:30"}, plan[7])

	eligible := data.Tabs[TabEligible]
	require.Len(t, eligible, 2)
	assert.Equal(t, "CS 261", eligible[1][0])

	completed := data.Tabs[TabCompleted]
	assert.Equal(t, [][]any{{"Code"}, {"CS 141"}, {"MATH 180"}}, completed)
}

func TestBuildTabData_EmptyPlan(t *testing.T) {
	data := BuildTabData(service.PlanReport{Major: model.Major{Name: "Undeclared"}})

	assert.Equal(t, courseHeader, data.Tabs[TabPlan][0])
	assert.Len(t, data.Tabs[TabPlan], 5, "header, spacer and three summary rows")
	assert.Len(t, data.Tabs[TabEligible], 1)
	assert.Len(t, data.Tabs[TabCompleted], 1)
}

func TestBuildTabData_DoesNotReorderInput(t *testing.T) {
	report := testReport()
	BuildTabData(report)

	assert.Equal(t, []string{"MATH 180", "CS 141"}, report.Completed)
}

func TestMissingTabs(t *testing.T) {
	assert.Equal(t, Tabs, MissingTabs(nil))
	assert.Equal(t, []string{TabEligible, TabCompleted}, MissingTabs([]string{"Sheet1", TabPlan}))
	assert.Nil(t, MissingTabs([]string{TabCompleted, TabEligible, TabPlan}))
}

func TestMockWriter(t *testing.T) {
	mock := NewMockWriter()
	report := testReport()

	require.NoError(t, mock.WritePlan(context.Background(), report))
	assert.Equal(t, 1, mock.WriteCallCount)
	assert.Equal(t, "CS 251", mock.LastReport.Planned[0].Code)

	boom := errors.New("quota exceeded")
	mock.SetWriteError(boom)
	assert.ErrorIs(t, mock.WritePlan(context.Background(), report), boom)

	calls := mock.GetWriteCalls()
	require.Len(t, calls, 2)
	assert.NoError(t, calls[0].Error)
	assert.ErrorIs(t, calls[1].Error, boom)
}

func TestNewWriter_InvalidConfig(t *testing.T) {
	_, err := NewWriter(context.Background(), Config{}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestTokenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token.json")
	token := &oauth2.Token{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer"}

	require.NoError(t, SaveToken(path, token))
	loaded, err := LoadToken(path)
	require.NoError(t, err)

	assert.Equal(t, "refresh", loaded.RefreshToken)
	assert.Equal(t, "access", loaded.AccessToken)
}
