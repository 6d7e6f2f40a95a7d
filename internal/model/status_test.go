package model_test

import (
	"testing"

	"github.com/jobtrackr/jobtrackr/internal/model"
)

func TestParseStatus_ValidValues(t *testing.T) {
	valid := []string{"Draft", "Applied", "Interview", "Offer", "Rejected", "Ghosted"}
	for _, s := range valid {
		got, err := model.ParseStatus(s)
		if err != nil {
			t.Errorf("ParseStatus(%q) returned unexpected error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseStatus(%q) = %q, want %q", s, got, s)
		}
	}
}

func TestParseStatus_InvalidValue(t *testing.T) {
	for _, s := range []string{"APPLIED", "applied", "Hired", ""} {
		if _, err := model.ParseStatus(s); err == nil {
			t.Errorf("ParseStatus(%q) expected error, got nil", s)
		}
	}
}

func TestIsClosed(t *testing.T) {
	closed := []model.Status{model.StatusRejected, model.StatusGhosted}
	for _, s := range closed {
		if !model.IsClosed(s) {
			t.Errorf("IsClosed(%s) should return true", s)
		}
	}
	open := []model.Status{model.StatusDraft, model.StatusApplied, model.StatusInterview, model.StatusOffer}
	for _, s := range open {
		if model.IsClosed(s) {
			t.Errorf("IsClosed(%s) should return false", s)
		}
	}
}

func TestIsPositive(t *testing.T) {
	positive := []model.Status{model.StatusInterview, model.StatusOffer}
	for _, s := range positive {
		if !model.IsPositive(s) {
			t.Errorf("IsPositive(%s) should return true", s)
		}
	}
	rest := []model.Status{model.StatusDraft, model.StatusApplied, model.StatusRejected, model.StatusGhosted}
	for _, s := range rest {
		if model.IsPositive(s) {
			t.Errorf("IsPositive(%s) should return false", s)
		}
	}
}
