package commission

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestWriteStatement(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.SubscribeRestaurant(ctx, SubscribeInput{RestaurantID: 10, PlanAmount: 1000}); err != nil {
		t.Fatal(err)
	}
	res, err := svc.SalesPersonCommissions(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteStatement(&buf, res); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := f.GetRows(statementSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) < 3 {
		t.Fatalf("rows = %v", rows)
	}
	if rows[0][0] != "ID" || rows[1][1] != "Kebapçı" || rows[1][2] != "2025-03" || rows[1][6] != "pending" {
		t.Fatalf("rows = %v", rows)
	}
	last := rows[len(rows)-1]
	if last[0] != "Commissions" || last[1] != "1" {
		t.Fatalf("totals row = %v", last)
	}
}

func TestExportHandler(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/commission-logs/salesperson/1/export", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "commissions-1.xlsx") {
		t.Fatalf("Content-Disposition = %q", cd)
	}

	if status, _ := do(t, app, "GET", "/api/commission-logs/salesperson/x/export", nil); status != 400 {
		t.Fatalf("non-numeric id status = %d, want 400", status)
	}
}
