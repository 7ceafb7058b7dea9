package resumes

import "time"

// Resume is the aggregate root. It exclusively owns its education,
// experience and skill lists; child entities have no lifecycle outside
// the résumé they belong to.
type Resume struct {
	ID         string       `json:"id"`
	UserID     string       `json:"user_id"`
	Title      string       `json:"title"`
	Contact    Contact      `json:"contact"`
	Summary    string       `json:"summary"`
	Education  []Education  `json:"education"`
	Experience []Experience `json:"experience"`
	Skills     []Skill      `json:"skills"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// Contact is embedded in the résumé and is not addressable by id.
type Contact struct {
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
}

type Education struct {
	ID           string     `json:"id"`
	Institution  string     `json:"institution"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"field_of_study"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	Description  string     `json:"description,omitempty"`
}

type Experience struct {
	ID           string     `json:"id"`
	Company      string     `json:"company"`
	Position     string     `json:"position"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	Description  string     `json:"description"`
	Achievements []string   `json:"achievements"`
}

type Skill struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Level string `json:"level"`
}

var skillLevels = map[string]struct{}{
	"Beginner":     {},
	"Intermediate": {},
	"Advanced":     {},
	"Expert":       {},
}

// ValidSkillLevel reports whether level is one of the enumerated values.
func ValidSkillLevel(level string) bool {
	_, ok := skillLevels[level]
	return ok
}

// ResumeUpdate carries a partial update. Nil fields are left untouched;
// non-nil child lists replace the stored list wholesale.
type ResumeUpdate struct {
	Title      *string
	Contact    *Contact
	Summary    *string
	Education  *[]Education
	Experience *[]Experience
	Skills     *[]Skill
}
