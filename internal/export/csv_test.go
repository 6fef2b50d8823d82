package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/issue-tracker/internal/domain"
)

func TestIssuesCSV(t *testing.T) {
	created := time.Date(2024, 1, 31, 15, 4, 5, 0, time.UTC)
	updated := time.Date(2024, 2, 2, 9, 0, 0, 0, time.UTC)

	issues := []domain.Issue{
		{
			ID:             2,
			Title:          "crash, then hang, then smoke",
			Status:         domain.IssueStatusInProgress,
			Priority:       domain.IssuePriorityHigh,
			CreatedByEmail: "customer@test.com",
			CreatedAt:      created,
			UpdatedAt:      &updated,
		},
		{
			ID:             1,
			Title:          "plain title",
			Status:         domain.IssueStatusOpen,
			Priority:       domain.IssuePriorityMedium,
			CreatedByEmail: "other@test.com",
			CreatedAt:      created,
		},
	}

	lines := strings.Split(strings.TrimRight(string(IssuesCSV(issues)), "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "ID,Title,Status,Priority,Created By,Created Date,Updated Date", lines[0])
	// Commas in the title become semicolons so the column count stays fixed.
	assert.Equal(t, "2,crash; then hang; then smoke,IN_PROGRESS,HIGH,customer@test.com,2024-01-31,2024-02-02", lines[1])
	// An issue never updated leaves the last column empty.
	assert.Equal(t, "1,plain title,OPEN,MEDIUM,other@test.com,2024-01-31,", lines[2])
}

func TestIssuesCSVEmpty(t *testing.T) {
	got := string(IssuesCSV(nil))
	assert.Equal(t, "ID,Title,Status,Priority,Created By,Created Date,Updated Date\n", got)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "IssueTracker_Report_20240131.csv", FileName("20240131"))
}
