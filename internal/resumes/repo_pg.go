package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// PGRepo implements Repo using Postgres. The aggregate spans the
// resumes row and the education, experience and skills tables keyed by
// resume_id; save and delete run inside one transaction so a crash
// cannot leave a half-written aggregate behind.
type PGRepo struct {
	DB *sql.DB
}

// Save upserts the parent row and reconciles each child table against
// the in-memory lists: elements without an id are inserted under a
// fresh one, elements with an id are updated, and rows whose id is no
// longer present in the list are deleted.
func (r *PGRepo) Save(ctx context.Context, resume *Resume) error {
	if resume == nil {
		return errors.New("resume is nil")
	}
	if resume.ID == "" {
		resume.ID = uuid.NewString()
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	const parentQuery = `
INSERT INTO resumes (id, user_id, title, summary, contact_email, contact_phone, contact_location, contact_linkedin, contact_github, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (id) DO UPDATE SET
  title = EXCLUDED.title,
  summary = EXCLUDED.summary,
  contact_email = EXCLUDED.contact_email,
  contact_phone = EXCLUDED.contact_phone,
  contact_location = EXCLUDED.contact_location,
  contact_linkedin = EXCLUDED.contact_linkedin,
  contact_github = EXCLUDED.contact_github,
  updated_at = EXCLUDED.updated_at`
	_, err = tx.ExecContext(ctx, parentQuery,
		resume.ID,
		resume.UserID,
		resume.Title,
		resume.Summary,
		resume.Contact.Email,
		nullableString(resume.Contact.Phone),
		nullableString(resume.Contact.Location),
		nullableString(resume.Contact.LinkedIn),
		nullableString(resume.Contact.GitHub),
		resume.CreatedAt,
		resume.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save resume: %w", err)
	}

	if err := r.saveEducation(ctx, tx, resume); err != nil {
		return err
	}
	if err := r.saveExperience(ctx, tx, resume); err != nil {
		return err
	}
	if err := r.saveSkills(ctx, tx, resume); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *PGRepo) saveEducation(ctx context.Context, tx *sql.Tx, resume *Resume) error {
	existing, err := childIDs(ctx, tx, "education", resume.ID)
	if err != nil {
		return err
	}

	const query = `
INSERT INTO education (id, resume_id, institution, degree, field_of_study, start_date, end_date, description, sort_order)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (id) DO UPDATE SET
  institution = EXCLUDED.institution,
  degree = EXCLUDED.degree,
  field_of_study = EXCLUDED.field_of_study,
  start_date = EXCLUDED.start_date,
  end_date = EXCLUDED.end_date,
  description = EXCLUDED.description,
  sort_order = EXCLUDED.sort_order`

	kept := make(map[string]struct{}, len(resume.Education))
	for i := range resume.Education {
		edu := &resume.Education[i]
		if edu.ID == "" {
			edu.ID = uuid.NewString()
		}
		kept[edu.ID] = struct{}{}
		_, err := tx.ExecContext(ctx, query,
			edu.ID,
			resume.ID,
			edu.Institution,
			edu.Degree,
			edu.FieldOfStudy,
			edu.StartDate,
			edu.EndDate,
			nullableString(edu.Description),
			i,
		)
		if err != nil {
			return fmt.Errorf("save education: %w", err)
		}
	}

	return deleteOrphans(ctx, tx, "education", existing, kept)
}

func (r *PGRepo) saveExperience(ctx context.Context, tx *sql.Tx, resume *Resume) error {
	existing, err := childIDs(ctx, tx, "experience", resume.ID)
	if err != nil {
		return err
	}

	const query = `
INSERT INTO experience (id, resume_id, company, position, start_date, end_date, description, achievements, sort_order)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (id) DO UPDATE SET
  company = EXCLUDED.company,
  position = EXCLUDED.position,
  start_date = EXCLUDED.start_date,
  end_date = EXCLUDED.end_date,
  description = EXCLUDED.description,
  achievements = EXCLUDED.achievements,
  sort_order = EXCLUDED.sort_order`

	kept := make(map[string]struct{}, len(resume.Experience))
	for i := range resume.Experience {
		exp := &resume.Experience[i]
		if exp.ID == "" {
			exp.ID = uuid.NewString()
		}
		kept[exp.ID] = struct{}{}

		achievements := exp.Achievements
		if achievements == nil {
			achievements = []string{}
		}
		achievementsJSON, err := json.Marshal(achievements)
		if err != nil {
			return fmt.Errorf("encode achievements: %w", err)
		}

		_, err = tx.ExecContext(ctx, query,
			exp.ID,
			resume.ID,
			exp.Company,
			exp.Position,
			exp.StartDate,
			exp.EndDate,
			exp.Description,
			achievementsJSON,
			i,
		)
		if err != nil {
			return fmt.Errorf("save experience: %w", err)
		}
	}

	return deleteOrphans(ctx, tx, "experience", existing, kept)
}

func (r *PGRepo) saveSkills(ctx context.Context, tx *sql.Tx, resume *Resume) error {
	existing, err := childIDs(ctx, tx, "skills", resume.ID)
	if err != nil {
		return err
	}

	const query = `
INSERT INTO skills (id, resume_id, name, level, sort_order)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE SET
  name = EXCLUDED.name,
  level = EXCLUDED.level,
  sort_order = EXCLUDED.sort_order`

	kept := make(map[string]struct{}, len(resume.Skills))
	for i := range resume.Skills {
		skill := &resume.Skills[i]
		if skill.ID == "" {
			skill.ID = uuid.NewString()
		}
		kept[skill.ID] = struct{}{}
		_, err := tx.ExecContext(ctx, query,
			skill.ID,
			resume.ID,
			skill.Name,
			skill.Level,
			i,
		)
		if err != nil {
			return fmt.Errorf("save skill: %w", err)
		}
	}

	return deleteOrphans(ctx, tx, "skills", existing, kept)
}

// childIDs returns the ids currently stored for a child table; the
// diff against the incoming list drives orphan deletion.
func childIDs(ctx context.Context, tx *sql.Tx, table, resumeID string) (map[string]struct{}, error) {
	rows, err := tx.QueryContext(ctx, fmt.Sprintf(`SELECT id FROM %s WHERE resume_id = $1`, table), resumeID)
	if err != nil {
		return nil, fmt.Errorf("list %s ids: %w", table, err)
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}

func deleteOrphans(ctx context.Context, tx *sql.Tx, table string, existing, kept map[string]struct{}) error {
	for id := range existing {
		if _, ok := kept[id]; ok {
			continue
		}
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), id); err != nil {
			return fmt.Errorf("delete orphaned %s row: %w", table, err)
		}
	}
	return nil
}

// GetByID assembles the aggregate from the parent row and its children.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Resume, error) {
	const query = `
SELECT id, user_id, title, summary, contact_email, contact_phone, contact_location, contact_linkedin, contact_github, created_at, updated_at
FROM resumes
WHERE id = $1
LIMIT 1`
	resume, err := scanResume(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return Resume{}, err
	}
	if err := r.loadChildren(ctx, &resume); err != nil {
		return Resume{}, err
	}
	return resume, nil
}

// GetByUserID returns all résumés owned by a user, newest first.
func (r *PGRepo) GetByUserID(ctx context.Context, userID string) ([]Resume, error) {
	const query = `
SELECT id, user_id, title, summary, contact_email, contact_phone, contact_location, contact_linkedin, contact_github, created_at, updated_at
FROM resumes
WHERE user_id = $1
ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Resume{}
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		if err := r.loadChildren(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Delete removes child rows first, then the parent. It reports whether
// the parent row existed.
func (r *PGRepo) Delete(ctx context.Context, id string) (bool, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin delete: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"education", "experience", "skills"} {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE resume_id = $1`, table), id); err != nil {
			return false, fmt.Errorf("delete %s rows: %w", table, err)
		}
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete resume: %w", err)
	}
	deleted, _ := res.RowsAffected()

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return deleted > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var resume Resume
	var phone, location, linkedin, github sql.NullString
	err := row.Scan(
		&resume.ID,
		&resume.UserID,
		&resume.Title,
		&resume.Summary,
		&resume.Contact.Email,
		&phone,
		&location,
		&linkedin,
		&github,
		&resume.CreatedAt,
		&resume.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	if phone.Valid {
		resume.Contact.Phone = phone.String
	}
	if location.Valid {
		resume.Contact.Location = location.String
	}
	if linkedin.Valid {
		resume.Contact.LinkedIn = linkedin.String
	}
	if github.Valid {
		resume.Contact.GitHub = github.String
	}
	return resume, nil
}

func (r *PGRepo) loadChildren(ctx context.Context, resume *Resume) error {
	education, err := r.loadEducation(ctx, resume.ID)
	if err != nil {
		return err
	}
	experience, err := r.loadExperience(ctx, resume.ID)
	if err != nil {
		return err
	}
	skills, err := r.loadSkills(ctx, resume.ID)
	if err != nil {
		return err
	}
	resume.Education = education
	resume.Experience = experience
	resume.Skills = skills
	return nil
}

func (r *PGRepo) loadEducation(ctx context.Context, resumeID string) ([]Education, error) {
	const query = `
SELECT id, institution, degree, field_of_study, start_date, end_date, description
FROM education
WHERE resume_id = $1
ORDER BY sort_order`
	rows, err := r.DB.QueryContext(ctx, query, resumeID)
	if err != nil {
		return nil, fmt.Errorf("load education: %w", err)
	}
	defer rows.Close()

	out := []Education{}
	for rows.Next() {
		var edu Education
		var endDate sql.NullTime
		var description sql.NullString
		if err := rows.Scan(
			&edu.ID,
			&edu.Institution,
			&edu.Degree,
			&edu.FieldOfStudy,
			&edu.StartDate,
			&endDate,
			&description,
		); err != nil {
			return nil, err
		}
		if endDate.Valid {
			edu.EndDate = &endDate.Time
		}
		if description.Valid {
			edu.Description = description.String
		}
		out = append(out, edu)
	}
	return out, rows.Err()
}

func (r *PGRepo) loadExperience(ctx context.Context, resumeID string) ([]Experience, error) {
	const query = `
SELECT id, company, position, start_date, end_date, description, achievements
FROM experience
WHERE resume_id = $1
ORDER BY sort_order`
	rows, err := r.DB.QueryContext(ctx, query, resumeID)
	if err != nil {
		return nil, fmt.Errorf("load experience: %w", err)
	}
	defer rows.Close()

	out := []Experience{}
	for rows.Next() {
		var exp Experience
		var endDate sql.NullTime
		var achievementsJSON []byte
		if err := rows.Scan(
			&exp.ID,
			&exp.Company,
			&exp.Position,
			&exp.StartDate,
			&endDate,
			&exp.Description,
			&achievementsJSON,
		); err != nil {
			return nil, err
		}
		if endDate.Valid {
			exp.EndDate = &endDate.Time
		}
		exp.Achievements = []string{}
		if len(achievementsJSON) > 0 {
			if err := json.Unmarshal(achievementsJSON, &exp.Achievements); err != nil {
				return nil, fmt.Errorf("decode achievements: %w", err)
			}
		}
		out = append(out, exp)
	}
	return out, rows.Err()
}

func (r *PGRepo) loadSkills(ctx context.Context, resumeID string) ([]Skill, error) {
	const query = `
SELECT id, name, level
FROM skills
WHERE resume_id = $1
ORDER BY sort_order`
	rows, err := r.DB.QueryContext(ctx, query, resumeID)
	if err != nil {
		return nil, fmt.Errorf("load skills: %w", err)
	}
	defer rows.Close()

	out := []Skill{}
	for rows.Next() {
		var skill Skill
		if err := rows.Scan(&skill.ID, &skill.Name, &skill.Level); err != nil {
			return nil, err
		}
		out = append(out, skill)
	}
	return out, rows.Err()
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

var _ Repo = (*PGRepo)(nil)
