package resumes

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-api/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the résumé service. Child entities are
// addressed by their stable id, never by list position.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches résumé routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes", h.create)
	rg.GET("/resumes", h.list)
	rg.GET("/resumes/:id", h.get)
	rg.PUT("/resumes/:id", h.replace)
	rg.DELETE("/resumes/:id", h.delete)

	rg.GET("/resumes/:id/contact", h.getContact)
	rg.POST("/resumes/:id/contact", h.setContact)
	rg.PATCH("/resumes/:id/contact", h.patchContact)

	rg.GET("/resumes/:id/education", h.listEducation)
	rg.POST("/resumes/:id/education", h.addEducation)
	rg.PATCH("/resumes/:id/education/:childId", h.patchEducation)
	rg.DELETE("/resumes/:id/education/:childId", h.deleteEducation)

	rg.GET("/resumes/:id/experience", h.listExperience)
	rg.POST("/resumes/:id/experience", h.addExperience)
	rg.PATCH("/resumes/:id/experience/:childId", h.patchExperience)
	rg.DELETE("/resumes/:id/experience/:childId", h.deleteExperience)

	rg.GET("/resumes/:id/skills", h.listSkills)
	rg.POST("/resumes/:id/skills", h.addSkill)
	rg.PATCH("/resumes/:id/skills/:childId", h.patchSkill)
	rg.DELETE("/resumes/:id/skills/:childId", h.deleteSkill)
}

func (h *Handler) create(c *gin.Context) {
	userID := strings.TrimSpace(c.Query("user_id"))
	if userID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "user_id parameter is required", nil)
		return
	}

	var req resumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	title, contact, summary, err := req.validate()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	resume, err := h.Svc.Create(c.Request.Context(), userID, title, contact, summary)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to create resume", nil)
		return
	}

	respond.JSON(c, http.StatusCreated, resume)
}

func (h *Handler) list(c *gin.Context) {
	userID := strings.TrimSpace(c.Query("user_id"))
	if userID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "user_id parameter is required", nil)
		return
	}

	out, err := h.Svc.GetByUser(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to list resumes", nil)
		return
	}
	respond.OK(c, out)
}

func (h *Handler) get(c *gin.Context) {
	resume, ok := h.loadResume(c)
	if !ok {
		return
	}
	respond.OK(c, resume)
}

func (h *Handler) replace(c *gin.Context) {
	var req resumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	title, contact, summary, err := req.validate()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	resume, err := h.Svc.Update(c.Request.Context(), c.Param("id"), ResumeUpdate{
		Title:   &title,
		Contact: &contact,
		Summary: &summary,
	})
	if err != nil {
		h.writeUpdateError(c, err)
		return
	}
	respond.OK(c, resume)
}

func (h *Handler) delete(c *gin.Context) {
	err := h.Svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to delete resume", nil)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) getContact(c *gin.Context) {
	resume, ok := h.loadResume(c)
	if !ok {
		return
	}
	respond.OK(c, resume.Contact)
}

func (h *Handler) setContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	contact, err := req.toContact()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	resume, err := h.Svc.Update(c.Request.Context(), c.Param("id"), ResumeUpdate{Contact: &contact})
	if err != nil {
		h.writeUpdateError(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, resume.Contact)
}

func (h *Handler) patchContact(c *gin.Context) {
	var patch contactPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	resume, ok := h.loadResume(c)
	if !ok {
		return
	}
	contact := resume.Contact
	if err := patch.apply(&contact); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	updated, err := h.Svc.Update(c.Request.Context(), resume.ID, ResumeUpdate{Contact: &contact})
	if err != nil {
		h.writeUpdateError(c, err)
		return
	}
	respond.OK(c, updated.Contact)
}

func (h *Handler) listEducation(c *gin.Context) {
	resume, ok := h.loadResume(c)
	if !ok {
		return
	}
	respond.OK(c, resume.Education)
}

func (h *Handler) addEducation(c *gin.Context) {
	var req educationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	edu, err := req.toEducation()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	resume, ok := h.loadResume(c)
	if !ok {
		return
	}
	list := append(resume.Education, edu)

	updated, err := h.Svc.Update(c.Request.Context(), resume.ID, ResumeUpdate{Education: &list})
	if err != nil {
		h.writeUpdateError(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, updated.Education[len(updated.Education)-1])
}

func (h *Handler) patchEducation(c *gin.Context) {
	var patch educationPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	resume, ok := h.loadResume(c)
	if !ok {
		return
	}
	idx := findEducation(resume.Education, c.Param("childId"))
	if idx < 0 {
		respond.Error(c, http.StatusNotFound, "not_found", "education entry not found", nil)
		return
	}

	list := resume.Education
	if err := patch.apply(&list[idx]); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	updated, err := h.Svc.Update(c.Request.Context(), resume.ID, ResumeUpdate{Education: &list})
	if err != nil {
		h.writeUpdateError(c, err)
		return
	}
	respond.OK(c, updated.Education[idx])
}

func (h *Handler) deleteEducation(c *gin.Context) {
	resume, ok := h.loadResume(c)
	if !ok {
		return
	}
	idx := findEducation(resume.Education, c.Param("childId"))
	if idx < 0 {
		respond.Error(c, http.StatusNotFound, "not_found", "education entry not found", nil)
		return
	}

	list := append(resume.Education[:idx], resume.Education[idx+1:]...)
	if _, err := h.Svc.Update(c.Request.Context(), resume.ID, ResumeUpdate{Education: &list}); err != nil {
		h.writeUpdateError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listExperience(c *gin.Context) {
	resume, ok := h.loadResume(c)
	if !ok {
		return
	}
	respond.OK(c, resume.Experience)
}

func (h *Handler) addExperience(c *gin.Context) {
	var req experienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	exp, err := req.toExperience()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	resume, ok := h.loadResume(c)
	if !ok {
		return
	}
	list := append(resume.Experience, exp)

	updated, err := h.Svc.Update(c.Request.Context(), resume.ID, ResumeUpdate{Experience: &list})
	if err != nil {
		h.writeUpdateError(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, updated.Experience[len(updated.Experience)-1])
}

func (h *Handler) patchExperience(c *gin.Context) {
	var patch experiencePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	resume, ok := h.loadResume(c)
	if !ok {
		return
	}
	idx := findExperience(resume.Experience, c.Param("childId"))
	if idx < 0 {
		respond.Error(c, http.StatusNotFound, "not_found", "experience entry not found", nil)
		return
	}

	list := resume.Experience
	if err := patch.apply(&list[idx]); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	updated, err := h.Svc.Update(c.Request.Context(), resume.ID, ResumeUpdate{Experience: &list})
	if err != nil {
		h.writeUpdateError(c, err)
		return
	}
	respond.OK(c, updated.Experience[idx])
}

func (h *Handler) deleteExperience(c *gin.Context) {
	resume, ok := h.loadResume(c)
	if !ok {
		return
	}
	idx := findExperience(resume.Experience, c.Param("childId"))
	if idx < 0 {
		respond.Error(c, http.StatusNotFound, "not_found", "experience entry not found", nil)
		return
	}

	list := append(resume.Experience[:idx], resume.Experience[idx+1:]...)
	if _, err := h.Svc.Update(c.Request.Context(), resume.ID, ResumeUpdate{Experience: &list}); err != nil {
		h.writeUpdateError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listSkills(c *gin.Context) {
	resume, ok := h.loadResume(c)
	if !ok {
		return
	}
	respond.OK(c, resume.Skills)
}

func (h *Handler) addSkill(c *gin.Context) {
	var req skillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	skill, err := req.toSkill()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	resume, ok := h.loadResume(c)
	if !ok {
		return
	}
	list := append(resume.Skills, skill)

	updated, err := h.Svc.Update(c.Request.Context(), resume.ID, ResumeUpdate{Skills: &list})
	if err != nil {
		h.writeUpdateError(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, updated.Skills[len(updated.Skills)-1])
}

func (h *Handler) patchSkill(c *gin.Context) {
	var patch skillPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	resume, ok := h.loadResume(c)
	if !ok {
		return
	}
	idx := findSkill(resume.Skills, c.Param("childId"))
	if idx < 0 {
		respond.Error(c, http.StatusNotFound, "not_found", "skill not found", nil)
		return
	}

	list := resume.Skills
	if err := patch.apply(&list[idx]); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	updated, err := h.Svc.Update(c.Request.Context(), resume.ID, ResumeUpdate{Skills: &list})
	if err != nil {
		h.writeUpdateError(c, err)
		return
	}
	respond.OK(c, updated.Skills[idx])
}

func (h *Handler) deleteSkill(c *gin.Context) {
	resume, ok := h.loadResume(c)
	if !ok {
		return
	}
	idx := findSkill(resume.Skills, c.Param("childId"))
	if idx < 0 {
		respond.Error(c, http.StatusNotFound, "not_found", "skill not found", nil)
		return
	}

	list := append(resume.Skills[:idx], resume.Skills[idx+1:]...)
	if _, err := h.Svc.Update(c.Request.Context(), resume.ID, ResumeUpdate{Skills: &list}); err != nil {
		h.writeUpdateError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// loadResume fetches the résumé named by the :id path parameter and
// writes the error response when it cannot be served.
func (h *Handler) loadResume(c *gin.Context) (Resume, bool) {
	resume, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		} else {
			respond.Error(c, http.StatusInternalServerError, "internal", "failed to fetch resume", nil)
		}
		return Resume{}, false
	}
	return resume, true
}

func (h *Handler) writeUpdateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to update resume", nil)
	}
}

func findEducation(list []Education, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

func findExperience(list []Experience, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

func findSkill(list []Skill, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}
