// service/borrowing_service_test.go
package service

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	logger "github.com/nmhung1294/INT3505E-02-demo/logging"
	"github.com/nmhung1294/INT3505E-02-demo/model"
)

func TestMain(m *testing.M) {
	logger.InitLogger(os.TempDir())
	os.Exit(m.Run())
}

func TestFineFor(t *testing.T) {
	svc := &BorrowingService{finePerDay: 5000}
	due := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		dueDate    *time.Time
		returnedAt time.Time
		want       float64
	}{
		{"no due date", nil, due.Add(72 * time.Hour), 0},
		{"returned early", &due, due.Add(-time.Hour), 0},
		{"returned exactly on time", &due, due, 0},
		{"one hour late counts as a day", &due, due.Add(time.Hour), 5000},
		{"three full days late", &due, due.Add(72 * time.Hour), 15000},
		{"three days and a minute late", &due, due.Add(72*time.Hour + time.Minute), 20000},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			borrowing := &model.Borrowing{DueDate: tc.dueDate}
			assert.Equal(t, tc.want, svc.FineFor(borrowing, tc.returnedAt))
		})
	}
}
