package ports

import (
	"bookstat/domain/report"
)

// ReportRenderer turns a report into human-readable documents. Render
// produces the canonical narrative; RenderHTML the same narrative as a
// standalone page.
type ReportRenderer interface {
	Render(rep *report.Report) ([]byte, error)
	RenderHTML(rep *report.Report) ([]byte, error)
}
