package resumes

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Service owns the aggregate lifecycle and delegates persistence to the
// repository.
type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Create builds a new aggregate with empty child lists and persists it.
// The returned résumé carries the assigned identity.
func (s *Service) Create(ctx context.Context, userID, title string, contact Contact, summary string) (Resume, error) {
	if strings.TrimSpace(userID) == "" {
		return Resume{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(title) == "" {
		return Resume{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	now := time.Now().UTC()
	resume := Resume{
		UserID:     userID,
		Title:      title,
		Contact:    contact,
		Summary:    summary,
		Education:  []Education{},
		Experience: []Experience{},
		Skills:     []Skill{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Repo.Save(ctx, &resume); err != nil {
		return Resume{}, err
	}
	return resume, nil
}

// Get fetches one aggregate by id.
func (s *Service) Get(ctx context.Context, id string) (Resume, error) {
	return s.Repo.GetByID(ctx, id)
}

// GetByUser fetches all aggregates owned by a user.
func (s *Service) GetByUser(ctx context.Context, userID string) ([]Resume, error) {
	return s.Repo.GetByUserID(ctx, userID)
}

// Update overlays the non-nil fields of upd onto the stored aggregate,
// stamps updated_at and persists. created_at is never touched. Child
// lists, when present, replace the stored lists wholesale; the
// repository reconciles removed elements.
func (s *Service) Update(ctx context.Context, id string, upd ResumeUpdate) (Resume, error) {
	resume, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Resume{}, err
	}

	if upd.Title != nil {
		resume.Title = *upd.Title
	}
	if upd.Contact != nil {
		resume.Contact = *upd.Contact
	}
	if upd.Summary != nil {
		resume.Summary = *upd.Summary
	}
	if upd.Education != nil {
		resume.Education = *upd.Education
	}
	if upd.Experience != nil {
		resume.Experience = *upd.Experience
	}
	if upd.Skills != nil {
		resume.Skills = *upd.Skills
	}

	resume.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Save(ctx, &resume); err != nil {
		return Resume{}, err
	}
	return resume, nil
}

// Delete cascades delete of the résumé and all child records.
func (s *Service) Delete(ctx context.Context, id string) error {
	existed, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !existed {
		return ErrNotFound
	}
	return nil
}
