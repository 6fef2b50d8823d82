// Package export renders the admin issue report. The column order, the
// yyyy-MM-dd date format and the comma-to-semicolon title escaping are a
// compatibility contract with existing report consumers; change none of them.
package export

import (
	"fmt"
	"strings"

	"github.com/spec-kit/issue-tracker/internal/domain"
)

const csvHeader = "ID,Title,Status,Priority,Created By,Created Date,Updated Date"

const csvDateLayout = "2006-01-02"

// IssuesCSV renders one row per issue in the given order.
func IssuesCSV(issues []domain.Issue) []byte {
	var b strings.Builder
	b.WriteString(csvHeader)
	b.WriteByte('\n')

	for i := range issues {
		issue := &issues[i]
		updated := ""
		if issue.UpdatedAt != nil {
			updated = issue.UpdatedAt.Format(csvDateLayout)
		}
		fmt.Fprintf(&b, "%d,%s,%s,%s,%s,%s,%s\n",
			issue.ID,
			strings.ReplaceAll(issue.Title, ",", ";"),
			issue.Status,
			issue.Priority,
			issue.CreatedByEmail,
			issue.CreatedAt.Format(csvDateLayout),
			updated,
		)
	}
	return []byte(b.String())
}

// FileName builds the attachment name for a report generated on the given
// day, e.g. IssueTracker_Report_20240131.csv.
func FileName(day string) string {
	return fmt.Sprintf("IssueTracker_Report_%s.csv", day)
}
