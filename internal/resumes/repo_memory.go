package resumes

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepo is an in-memory Repo used when no database is configured.
// Aggregates are stored as deep copies so callers never alias stored
// state.
type MemoryRepo struct {
	mu      sync.RWMutex
	resumes map[string]Resume
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{resumes: make(map[string]Resume)}
}

func (r *MemoryRepo) Save(ctx context.Context, resume *Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if resume.ID == "" {
		resume.ID = uuid.NewString()
	}
	for i := range resume.Education {
		if resume.Education[i].ID == "" {
			resume.Education[i].ID = uuid.NewString()
		}
	}
	for i := range resume.Experience {
		if resume.Experience[i].ID == "" {
			resume.Experience[i].ID = uuid.NewString()
		}
	}
	for i := range resume.Skills {
		if resume.Skills[i].ID == "" {
			resume.Skills[i].ID = uuid.NewString()
		}
	}

	r.resumes[resume.ID] = cloneResume(*resume)
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	resume, ok := r.resumes[id]
	if !ok {
		return Resume{}, ErrNotFound
	}
	return cloneResume(resume), nil
}

func (r *MemoryRepo) GetByUserID(ctx context.Context, userID string) ([]Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Resume{}
	for _, resume := range r.resumes {
		if resume.UserID == userID {
			out = append(out, cloneResume(resume))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.resumes[id]; !ok {
		return false, nil
	}
	delete(r.resumes, id)
	return true, nil
}

func cloneResume(resume Resume) Resume {
	out := resume
	out.Education = make([]Education, len(resume.Education))
	for i, edu := range resume.Education {
		out.Education[i] = edu
		if edu.EndDate != nil {
			end := *edu.EndDate
			out.Education[i].EndDate = &end
		}
	}
	out.Experience = make([]Experience, len(resume.Experience))
	for i, exp := range resume.Experience {
		out.Experience[i] = exp
		if exp.EndDate != nil {
			end := *exp.EndDate
			out.Experience[i].EndDate = &end
		}
		out.Experience[i].Achievements = append([]string{}, exp.Achievements...)
	}
	out.Skills = append([]Skill{}, resume.Skills...)
	return out
}

var _ Repo = (*MemoryRepo)(nil)
