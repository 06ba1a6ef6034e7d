package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/alx-zhu/one-task-manager/internal/models"
)

// Generator renders board reports.
type Generator interface {
	BoardSummary(ownerID string, buckets []models.Bucket) ([]byte, error)
}

type boardReportGenerator struct{}

func NewBoardReportGenerator() Generator {
	return &boardReportGenerator{}
}

func (g *boardReportGenerator) BoardSummary(ownerID string, buckets []models.Bucket) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle("Task Board Summary", false)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.Cell(0, 10, "Task Board Summary")
	doc.Ln(8)
	doc.SetFont("Helvetica", "", 9)
	doc.Cell(0, 6, fmt.Sprintf("Owner %s, generated %s", ownerID, time.Now().Format("2 Jan 2006 15:04")))
	doc.Ln(10)

	for _, b := range buckets {
		doc.SetFont("Helvetica", "B", 12)
		doc.Cell(0, 8, b.Name)
		doc.Ln(6)

		doc.SetFont("Helvetica", "I", 9)
		doc.Cell(0, 5, fmt.Sprintf("%d task(s), limit %s", len(b.Tasks), b.Limit.String()))
		doc.Ln(7)

		if len(b.Tasks) == 0 {
			doc.SetFont("Helvetica", "", 9)
			doc.Cell(0, 5, "  (empty)")
			doc.Ln(7)
			continue
		}

		doc.SetFont("Helvetica", "", 9)
		for _, t := range b.Tasks {
			due := ""
			if t.DueDate != nil {
				due = ", due " + t.DueDate.Format("2 Jan")
			}
			doc.Cell(0, 5, fmt.Sprintf("  %d. %s [%s/%s]%s",
				t.OrderInBucket+1, t.Title, t.Status, t.Priority, due))
			doc.Ln(5)
		}
		doc.Ln(4)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render board summary pdf: %w", err)
	}
	return buf.Bytes(), nil
}
