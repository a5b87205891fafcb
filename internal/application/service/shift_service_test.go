package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/Shrey0428/ExoticBill/pkg/pagination"
)

func TestClockInAndOut(t *testing.T) {
	repo := &fakeShiftRepo{}
	svc := NewShiftService(repo, newFakeEmployeeRepo(manager), &fakeTx{})
	svc.now = fixedClock(testNow)
	ctx := context.Background()

	shift, err := svc.ClockIn(ctx, "EMP-1")
	if err != nil {
		t.Fatalf("ClockIn() error = %v", err)
	}
	if !shift.ClockIn.Equal(testNow) || !shift.IsOpen() {
		t.Errorf("unexpected shift %+v", shift)
	}

	if _, err := svc.ClockIn(ctx, "EMP-1"); errorCode(err) != http.StatusConflict {
		t.Errorf("double clock-in: got %v", err)
	}

	open, _ := svc.OpenShifts(ctx)
	if len(open) != 1 {
		t.Errorf("open shifts = %d, want 1", len(open))
	}

	svc.now = fixedClock(testNow.Add(8*time.Hour + 15*time.Minute))
	out, err := svc.ClockOut(ctx, "EMP-1")
	if err != nil {
		t.Fatalf("ClockOut() error = %v", err)
	}
	if out.Minutes != 495 || out.Duration != "8h15m0s" {
		t.Errorf("unexpected duration %+v", out)
	}

	if _, err := svc.ClockOut(ctx, "EMP-1"); errorCode(err) != http.StatusConflict {
		t.Errorf("clock-out without a shift: got %v", err)
	}

	page, err := svc.ListShifts(ctx, "EMP-1", &pagination.PaginationParams{})
	if err != nil {
		t.Fatal(err)
	}
	if page.Pagination.Total != 1 || page.Items[0].IsOpen() {
		t.Errorf("unexpected shift listing %+v", page.Items)
	}
}

func TestClockInUnknownEmployee(t *testing.T) {
	svc := NewShiftService(&fakeShiftRepo{}, newFakeEmployeeRepo(), &fakeTx{})

	if _, err := svc.ClockIn(context.Background(), "GHOST"); errorCode(err) != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
	if _, err := svc.ClockIn(context.Background(), ""); errorCode(err) != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %v", err)
	}
}
