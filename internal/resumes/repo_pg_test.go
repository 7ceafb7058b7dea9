package resumes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoSaveInsertsAggregate(t *testing.T) {
	repo, mock := newMockRepo(t)
	resume := sampleResume("user-1")

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO resumes").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT id FROM education").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO education").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT id FROM experience").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO experience").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT id FROM skills").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO skills").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.Save(context.Background(), &resume); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if resume.ID == "" || resume.Skills[0].ID == "" {
		t.Fatalf("expected assigned ids")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoSaveDeletesOrphanedChildren(t *testing.T) {
	repo, mock := newMockRepo(t)
	resume := sampleResume("user-1")
	resume.ID = "res-1"
	resume.Education = nil
	resume.Experience = nil
	resume.Skills = []Skill{{ID: "skill-keep", Name: "Go", Level: "Expert"}}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO resumes").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT id FROM education").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT id FROM experience").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT id FROM skills").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("skill-keep").AddRow("skill-gone"))
	mock.ExpectExec("INSERT INTO skills").
		WithArgs("skill-keep", "res-1", "Go", "Expert", 0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM skills").
		WithArgs("skill-gone").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.Save(context.Background(), &resume); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoSaveRollsBackOnChildFailure(t *testing.T) {
	repo, mock := newMockRepo(t)
	resume := sampleResume("user-1")

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO resumes").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT id FROM education").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO education").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	if err := repo.Save(context.Background(), &resume); err == nil {
		t.Fatalf("expected save to fail")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDAssemblesAggregate(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM resumes").
		WithArgs("res-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "title", "summary",
			"contact_email", "contact_phone", "contact_location", "contact_linkedin", "contact_github",
			"created_at", "updated_at",
		}).AddRow("res-1", "user-1", "Backend Engineer", "Builds services.",
			"jane@example.com", nil, "Berlin", nil, nil, now, now))
	mock.ExpectQuery("SELECT (.+) FROM education").
		WithArgs("res-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "institution", "degree", "field_of_study", "start_date", "end_date", "description",
		}).AddRow("edu-1", "TU Berlin", "BSc", "CS", now, nil, nil))
	mock.ExpectQuery("SELECT (.+) FROM experience").
		WithArgs("res-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "company", "position", "start_date", "end_date", "description", "achievements",
		}).AddRow("exp-1", "Acme", "Engineer", now, nil, "APIs", []byte(`["shipped v1"]`)))
	mock.ExpectQuery("SELECT (.+) FROM skills").
		WithArgs("res-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "level"}).
			AddRow("skill-1", "Go", "Advanced"))

	resume, err := repo.GetByID(context.Background(), "res-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if resume.Contact.Location != "Berlin" || resume.Contact.Phone != "" {
		t.Fatalf("unexpected contact: %+v", resume.Contact)
	}
	if len(resume.Education) != 1 || resume.Education[0].EndDate != nil {
		t.Fatalf("unexpected education: %+v", resume.Education)
	}
	if len(resume.Experience) != 1 || len(resume.Experience[0].Achievements) != 1 {
		t.Fatalf("unexpected experience: %+v", resume.Experience)
	}
	if len(resume.Skills) != 1 || resume.Skills[0].Level != "Advanced" {
		t.Fatalf("unexpected skills: %+v", resume.Skills)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM resumes").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "title", "summary",
			"contact_email", "contact_phone", "contact_location", "contact_linkedin", "contact_github",
			"created_at", "updated_at",
		}))

	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoDeleteCascades(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM education").WithArgs("res-1").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM experience").WithArgs("res-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM skills").WithArgs("res-1").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM resumes").WithArgs("res-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	existed, err := repo.Delete(context.Background(), "res-1")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !existed {
		t.Fatalf("expected delete to report existence")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoDeleteMissing(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM education").WithArgs("missing").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM experience").WithArgs("missing").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM skills").WithArgs("missing").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM resumes").WithArgs("missing").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	existed, err := repo.Delete(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if existed {
		t.Fatalf("expected delete to report absence")
	}
}
