package schedule

import (
	"errors"
	"testing"
)

func TestConfirmPending(t *testing.T) {
	a := &Appointment{Status: StatusPending}
	if err := a.Confirm(); err != nil {
		t.Fatalf("confirming pending appointment: %v", err)
	}
	if a.Status != StatusConfirmed {
		t.Fatalf("status = %s, want %s", a.Status, StatusConfirmed)
	}
}

func TestConfirmCanceledFails(t *testing.T) {
	a := &Appointment{Status: StatusCanceled}
	if err := a.Confirm(); !errors.Is(err, ErrInvalidStatusTransition) {
		t.Fatalf("expected ErrInvalidStatusTransition, got %v", err)
	}
}

func TestCompleteRequiresConfirmed(t *testing.T) {
	for _, status := range []AppointmentStatus{StatusPending, StatusCanceled, StatusCompleted} {
		a := &Appointment{Status: status}
		if err := a.Complete(); !errors.Is(err, ErrInvalidStatusTransition) {
			t.Errorf("completing %s appointment: got %v, want ErrInvalidStatusTransition", status, err)
		}
	}

	a := &Appointment{Status: StatusConfirmed}
	if err := a.Complete(); err != nil {
		t.Fatalf("completing confirmed appointment: %v", err)
	}
	if a.Status != StatusCompleted {
		t.Fatalf("status = %s, want %s", a.Status, StatusCompleted)
	}
}

func TestCancelFromPendingAndConfirmed(t *testing.T) {
	for _, status := range []AppointmentStatus{StatusPending, StatusConfirmed} {
		a := &Appointment{Status: status}
		if err := a.Cancel("patient request"); err != nil {
			t.Fatalf("canceling %s appointment: %v", status, err)
		}
		if a.Status != StatusCanceled {
			t.Fatalf("status = %s, want %s", a.Status, StatusCanceled)
		}
		if a.CancelReason != "patient request" || a.CanceledAt == nil {
			t.Fatalf("cancel metadata not recorded")
		}
	}
}

func TestCancelIsIdempotent(t *testing.T) {
	a := &Appointment{Status: StatusConfirmed}
	if err := a.Cancel("first"); err != nil {
		t.Fatalf("first cancel: %v", err)
	}
	firstCanceledAt := *a.CanceledAt

	if err := a.Cancel("second"); err != nil {
		t.Fatalf("second cancel: %v", err)
	}
	if a.CancelReason != "first" {
		t.Errorf("second cancel overwrote reason: %q", a.CancelReason)
	}
	if !a.CanceledAt.Equal(firstCanceledAt) {
		t.Errorf("second cancel touched timestamp")
	}
}

func TestCompletedIsTerminal(t *testing.T) {
	a := &Appointment{Status: StatusCompleted}
	for _, next := range []AppointmentStatus{StatusPending, StatusConfirmed, StatusCanceled} {
		if a.CanTransitionTo(next) {
			t.Errorf("completed appointment may transition to %s", next)
		}
	}
	if err := a.Cancel("too late"); !errors.Is(err, ErrInvalidStatusTransition) {
		t.Fatalf("canceling completed appointment: got %v", err)
	}
}
