package resumes

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestServiceCreateInitializesAggregate(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	resume, err := svc.Create(context.Background(), "user-1", "Backend Engineer", Contact{Email: "jane@example.com"}, "Builds services.")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if resume.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if resume.Education == nil || resume.Experience == nil || resume.Skills == nil {
		t.Fatalf("child lists must be empty, not nil")
	}
	if len(resume.Education)+len(resume.Experience)+len(resume.Skills) != 0 {
		t.Fatalf("new aggregate must start with empty child lists")
	}
	if resume.CreatedAt.IsZero() || !resume.CreatedAt.Equal(resume.UpdatedAt) {
		t.Fatalf("created_at and updated_at must both be stamped on create")
	}
}

func TestServiceCreateValidation(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	if _, err := svc.Create(context.Background(), "", "Title", Contact{}, "sum"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing user id, got %v", err)
	}
	if _, err := svc.Create(context.Background(), "user-1", "  ", Contact{}, "sum"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank title, got %v", err)
	}
}

func TestServiceUpdatePartialLeavesOtherFields(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	created, err := svc.Create(context.Background(), "user-1", "Backend Engineer", Contact{Email: "jane@example.com"}, "Old summary")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Update(context.Background(), created.ID, ResumeUpdate{
		Skills: &[]Skill{{Name: "Go", Level: "Expert"}},
	}); err != nil {
		t.Fatalf("Update skills: %v", err)
	}

	summary := "New summary"
	updated, err := svc.Update(context.Background(), created.ID, ResumeUpdate{Summary: &summary})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.Summary != "New summary" {
		t.Fatalf("summary not updated: %q", updated.Summary)
	}
	if updated.Title != created.Title {
		t.Fatalf("title must be untouched, got %q", updated.Title)
	}
	if updated.Contact != created.Contact {
		t.Fatalf("contact must be untouched, got %+v", updated.Contact)
	}
	if len(updated.Skills) != 1 || updated.Skills[0].Name != "Go" {
		t.Fatalf("skills must be untouched by summary-only update: %+v", updated.Skills)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("created_at must never change")
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) && !updated.UpdatedAt.Equal(created.UpdatedAt) {
		t.Fatalf("updated_at must advance")
	}
}

func TestServiceUpdateReplacesChildListWholesale(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	created, err := svc.Create(context.Background(), "user-1", "Backend Engineer", Contact{Email: "jane@example.com"}, "sum")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	first, err := svc.Update(context.Background(), created.ID, ResumeUpdate{
		Skills: &[]Skill{{Name: "Go", Level: "Expert"}, {Name: "SQL", Level: "Advanced"}},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	keep := first.Skills[0]

	second, err := svc.Update(context.Background(), created.ID, ResumeUpdate{
		Skills: &[]Skill{keep},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(second.Skills) != 1 || second.Skills[0].ID != keep.ID {
		t.Fatalf("expected only the kept skill to survive: %+v", second.Skills)
	}
}

func TestServiceUpdateMissingResume(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	title := "anything"
	if _, err := svc.Update(context.Background(), "missing", ResumeUpdate{Title: &title}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestServiceDelete(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	created, err := svc.Create(context.Background(), "user-1", "Backend Engineer", Contact{Email: "jane@example.com"}, "sum")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for repeated delete, got %v", err)
	}
}

func TestServiceGetByUser(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	if _, err := svc.Create(context.Background(), "user-1", "One", Contact{Email: "a@x.com"}, "s"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	time.Sleep(time.Millisecond)
	if _, err := svc.Create(context.Background(), "user-1", "Two", Contact{Email: "a@x.com"}, "s"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	list, err := svc.GetByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetByUser: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 resumes, got %d", len(list))
	}
	if list[0].Title != "Two" {
		t.Fatalf("expected newest first, got %q", list[0].Title)
	}
}
