package resumes

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"time"
)

// Request bodies accept dates as 2006-01-02 or RFC 3339; responses
// always emit RFC 3339 UTC.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", raw)
}

func validEmail(raw string) bool {
	addr, err := mail.ParseAddress(raw)
	return err == nil && addr.Address == raw
}

func validURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

type contactRequest struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
}

func (r contactRequest) toContact() (Contact, error) {
	email := strings.TrimSpace(r.Email)
	if email == "" {
		return Contact{}, fmt.Errorf("contact email is required")
	}
	if !validEmail(email) {
		return Contact{}, fmt.Errorf("contact email is not a valid address")
	}
	if r.LinkedIn != "" && !validURL(r.LinkedIn) {
		return Contact{}, fmt.Errorf("linkedin must be a valid URL")
	}
	if r.GitHub != "" && !validURL(r.GitHub) {
		return Contact{}, fmt.Errorf("github must be a valid URL")
	}
	return Contact{
		Email:    email,
		Phone:    strings.TrimSpace(r.Phone),
		Location: strings.TrimSpace(r.Location),
		LinkedIn: strings.TrimSpace(r.LinkedIn),
		GitHub:   strings.TrimSpace(r.GitHub),
	}, nil
}

type contactPatch struct {
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Location *string `json:"location"`
	LinkedIn *string `json:"linkedin"`
	GitHub   *string `json:"github"`
}

func (p contactPatch) apply(contact *Contact) error {
	if p.Email != nil {
		email := strings.TrimSpace(*p.Email)
		if !validEmail(email) {
			return fmt.Errorf("contact email is not a valid address")
		}
		contact.Email = email
	}
	if p.Phone != nil {
		contact.Phone = strings.TrimSpace(*p.Phone)
	}
	if p.Location != nil {
		contact.Location = strings.TrimSpace(*p.Location)
	}
	if p.LinkedIn != nil {
		if *p.LinkedIn != "" && !validURL(*p.LinkedIn) {
			return fmt.Errorf("linkedin must be a valid URL")
		}
		contact.LinkedIn = strings.TrimSpace(*p.LinkedIn)
	}
	if p.GitHub != nil {
		if *p.GitHub != "" && !validURL(*p.GitHub) {
			return fmt.Errorf("github must be a valid URL")
		}
		contact.GitHub = strings.TrimSpace(*p.GitHub)
	}
	return nil
}

type resumeRequest struct {
	Title   string          `json:"title"`
	Contact *contactRequest `json:"contact"`
	Summary *string         `json:"summary"`
}

func (r resumeRequest) validate() (string, Contact, string, error) {
	title := strings.TrimSpace(r.Title)
	if title == "" {
		return "", Contact{}, "", fmt.Errorf("title is required")
	}
	if r.Contact == nil {
		return "", Contact{}, "", fmt.Errorf("contact is required")
	}
	contact, err := r.Contact.toContact()
	if err != nil {
		return "", Contact{}, "", err
	}
	if r.Summary == nil {
		return "", Contact{}, "", fmt.Errorf("summary is required")
	}
	return title, contact, *r.Summary, nil
}

type educationRequest struct {
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Description  string `json:"description"`
}

func (r educationRequest) toEducation() (Education, error) {
	if strings.TrimSpace(r.Institution) == "" {
		return Education{}, fmt.Errorf("institution is required")
	}
	if strings.TrimSpace(r.Degree) == "" {
		return Education{}, fmt.Errorf("degree is required")
	}
	if strings.TrimSpace(r.FieldOfStudy) == "" {
		return Education{}, fmt.Errorf("field_of_study is required")
	}
	startDate, err := parseDate(r.StartDate)
	if err != nil {
		return Education{}, fmt.Errorf("start_date: %v", err)
	}
	edu := Education{
		Institution:  strings.TrimSpace(r.Institution),
		Degree:       strings.TrimSpace(r.Degree),
		FieldOfStudy: strings.TrimSpace(r.FieldOfStudy),
		StartDate:    startDate,
		Description:  strings.TrimSpace(r.Description),
	}
	if r.EndDate != "" {
		endDate, err := parseDate(r.EndDate)
		if err != nil {
			return Education{}, fmt.Errorf("end_date: %v", err)
		}
		edu.EndDate = &endDate
	}
	return edu, nil
}

type educationPatch struct {
	Institution  *string `json:"institution"`
	Degree       *string `json:"degree"`
	FieldOfStudy *string `json:"field_of_study"`
	StartDate    *string `json:"start_date"`
	EndDate      *string `json:"end_date"`
	Description  *string `json:"description"`
}

func (p educationPatch) apply(edu *Education) error {
	if p.Institution != nil {
		edu.Institution = strings.TrimSpace(*p.Institution)
	}
	if p.Degree != nil {
		edu.Degree = strings.TrimSpace(*p.Degree)
	}
	if p.FieldOfStudy != nil {
		edu.FieldOfStudy = strings.TrimSpace(*p.FieldOfStudy)
	}
	if p.StartDate != nil {
		startDate, err := parseDate(*p.StartDate)
		if err != nil {
			return fmt.Errorf("start_date: %v", err)
		}
		edu.StartDate = startDate
	}
	if p.EndDate != nil {
		if *p.EndDate == "" {
			edu.EndDate = nil
		} else {
			endDate, err := parseDate(*p.EndDate)
			if err != nil {
				return fmt.Errorf("end_date: %v", err)
			}
			edu.EndDate = &endDate
		}
	}
	if p.Description != nil {
		edu.Description = strings.TrimSpace(*p.Description)
	}
	return nil
}

type experienceRequest struct {
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements"`
}

func (r experienceRequest) toExperience() (Experience, error) {
	if strings.TrimSpace(r.Company) == "" {
		return Experience{}, fmt.Errorf("company is required")
	}
	if strings.TrimSpace(r.Position) == "" {
		return Experience{}, fmt.Errorf("position is required")
	}
	startDate, err := parseDate(r.StartDate)
	if err != nil {
		return Experience{}, fmt.Errorf("start_date: %v", err)
	}
	achievements := r.Achievements
	if achievements == nil {
		achievements = []string{}
	}
	exp := Experience{
		Company:      strings.TrimSpace(r.Company),
		Position:     strings.TrimSpace(r.Position),
		StartDate:    startDate,
		Description:  strings.TrimSpace(r.Description),
		Achievements: achievements,
	}
	if r.EndDate != "" {
		endDate, err := parseDate(r.EndDate)
		if err != nil {
			return Experience{}, fmt.Errorf("end_date: %v", err)
		}
		exp.EndDate = &endDate
	}
	return exp, nil
}

type experiencePatch struct {
	Company      *string   `json:"company"`
	Position     *string   `json:"position"`
	StartDate    *string   `json:"start_date"`
	EndDate      *string   `json:"end_date"`
	Description  *string   `json:"description"`
	Achievements *[]string `json:"achievements"`
}

func (p experiencePatch) apply(exp *Experience) error {
	if p.Company != nil {
		exp.Company = strings.TrimSpace(*p.Company)
	}
	if p.Position != nil {
		exp.Position = strings.TrimSpace(*p.Position)
	}
	if p.StartDate != nil {
		startDate, err := parseDate(*p.StartDate)
		if err != nil {
			return fmt.Errorf("start_date: %v", err)
		}
		exp.StartDate = startDate
	}
	if p.EndDate != nil {
		if *p.EndDate == "" {
			exp.EndDate = nil
		} else {
			endDate, err := parseDate(*p.EndDate)
			if err != nil {
				return fmt.Errorf("end_date: %v", err)
			}
			exp.EndDate = &endDate
		}
	}
	if p.Description != nil {
		exp.Description = strings.TrimSpace(*p.Description)
	}
	if p.Achievements != nil {
		exp.Achievements = *p.Achievements
	}
	return nil
}

type skillRequest struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

func (r skillRequest) toSkill() (Skill, error) {
	if strings.TrimSpace(r.Name) == "" {
		return Skill{}, fmt.Errorf("name is required")
	}
	if !ValidSkillLevel(r.Level) {
		return Skill{}, fmt.Errorf("level must be one of Beginner, Intermediate, Advanced, Expert")
	}
	return Skill{Name: strings.TrimSpace(r.Name), Level: r.Level}, nil
}

type skillPatch struct {
	Name  *string `json:"name"`
	Level *string `json:"level"`
}

func (p skillPatch) apply(skill *Skill) error {
	if p.Name != nil {
		skill.Name = strings.TrimSpace(*p.Name)
	}
	if p.Level != nil {
		if !ValidSkillLevel(*p.Level) {
			return fmt.Errorf("level must be one of Beginner, Intermediate, Advanced, Expert")
		}
		skill.Level = *p.Level
	}
	return nil
}
