// childcare-crm/internal/handlers/transition_handler.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"childcare-crm/config"
	"childcare-crm/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TransitionInput binds create/update payloads for a classroom transition.
type TransitionInput struct {
	ChildID         uint   `json:"childId" binding:"required"`
	NextClassroomID uint   `json:"nextClassroomId" binding:"required"`
	TransitionDate  string `json:"transitionDate" binding:"required"`
	Status          string `json:"status"`
	Notes           string `json:"notes"`
}

// TransitionResponse is the API shape of a transition, enriched with the
// child's name, the destination classroom name and the child's age in whole
// months on the transition date.
type TransitionResponse struct {
	ID                uint   `json:"id"`
	ChildID           uint   `json:"childId"`
	ChildName         string `json:"childName"`
	NextClassroomID   uint   `json:"nextClassroomId"`
	NextClassroomName string `json:"nextClassroomName"`
	TransitionDate    string `json:"transitionDate"`
	Status            string `json:"status"`
	Notes             string `json:"notes"`
	AgeAtTransition   *int   `json:"ageAtTransition"`
}

func transitionToResponse(t *models.Transition) TransitionResponse {
	resp := TransitionResponse{
		ID:              t.ID,
		ChildID:         t.ChildID,
		NextClassroomID: t.NextClassroomID,
		TransitionDate:  fmtDate(t.TransitionDate),
		Status:          t.Status,
		Notes:           t.Notes,
	}
	if t.Child != nil {
		resp.ChildName = t.Child.FirstName + " " + t.Child.LastName
		age := ageInMonths(t.Child.DateOfBirth, t.TransitionDate)
		resp.AgeAtTransition = &age
	}
	if t.NextClassroom != nil {
		resp.NextClassroomName = t.NextClassroom.ClassroomName
	}
	return resp
}

func validTransitionStatus(s string) bool {
	switch s {
	case models.TransitionScheduled, models.TransitionCompleted, models.TransitionCancelled:
		return true
	}
	return false
}

func (in *TransitionInput) apply(db *gorm.DB, t *models.Transition) (int, error) {
	date, err := parseDate(in.TransitionDate)
	if err != nil {
		return http.StatusBadRequest, err
	}
	status := in.Status
	if status == "" {
		status = models.TransitionScheduled
	}
	if !validTransitionStatus(status) {
		return http.StatusBadRequest, errors.New("invalid transition status: " + in.Status)
	}

	var child models.Child
	if err := db.First(&child, in.ChildID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return http.StatusNotFound, errors.New("child not found")
		}
		return http.StatusInternalServerError, err
	}
	var classroom models.Classroom
	if err := db.First(&classroom, in.NextClassroomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return http.StatusNotFound, errors.New("classroom not found")
		}
		return http.StatusInternalServerError, err
	}

	t.ChildID = in.ChildID
	t.NextClassroomID = in.NextClassroomID
	t.TransitionDate = date
	t.Status = status
	t.Notes = in.Notes
	return http.StatusOK, nil
}

func ListTransitionsHandler(c *gin.Context) {
	var transitions []models.Transition
	var totalRows int64

	baseQuery := config.DB.Model(&models.Transition{})

	if childIDStr := c.Query("child_id"); childIDStr != "" {
		if childID, err := strconv.Atoi(childIDStr); err == nil {
			baseQuery = baseQuery.Where("child_id = ?", childID)
		}
	}
	if classroomIDStr := c.Query("classroom_id"); classroomIDStr != "" {
		if classroomID, err := strconv.Atoi(classroomIDStr); err == nil {
			baseQuery = baseQuery.Where("next_classroom_id = ?", classroomID)
		}
	}
	if status := c.Query("status"); status != "" {
		baseQuery = baseQuery.Where("status = ?", status)
	}

	if err := baseQuery.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count transitions"})
		return
	}

	if err := baseQuery.Scopes(Paginate(c)).
		Preload("Child").
		Preload("NextClassroom").
		Order("transition_date").
		Find(&transitions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transitions"})
		return
	}

	data := make([]TransitionResponse, 0, len(transitions))
	for i := range transitions {
		data = append(data, transitionToResponse(&transitions[i]))
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, data, totalRows))
}

// ListUpcomingTransitionsHandler returns scheduled transitions from the
// given date (or today) onward, soonest first. Used by the "upcoming
// enrollments" dashboard view.
func ListUpcomingTransitionsHandler(c *gin.Context) {
	fromStr := c.Query("from")
	var from = todayUTC()
	if fromStr != "" {
		parsed, err := parseDate(fromStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		from = parsed
	}

	var transitions []models.Transition
	if err := config.DB.
		Preload("Child").
		Preload("NextClassroom").
		Where("transition_date >= ? AND status = ?", from, models.TransitionScheduled).
		Order("transition_date").
		Find(&transitions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch upcoming transitions"})
		return
	}

	data := make([]TransitionResponse, 0, len(transitions))
	for i := range transitions {
		data = append(data, transitionToResponse(&transitions[i]))
	}

	c.JSON(http.StatusOK, gin.H{"data": data})
}

func GetTransitionHandler(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var transition models.Transition
	if err := config.DB.Preload("Child").Preload("NextClassroom").First(&transition, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transition not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transition: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, transitionToResponse(&transition))
}

func CreateTransitionHandler(c *gin.Context) {
	var in TransitionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	var transition models.Transition
	if status, err := in.apply(config.DB, &transition); err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Create(&transition).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transition: " + err.Error()})
		return
	}

	config.DB.Preload("Child").Preload("NextClassroom").First(&transition, transition.ID)
	c.JSON(http.StatusCreated, transitionToResponse(&transition))
}

func UpdateTransitionHandler(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var transition models.Transition
	if err := config.DB.First(&transition, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transition not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transition: " + err.Error()})
		return
	}

	var in TransitionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if status, err := in.apply(config.DB, &transition); err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Save(&transition).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update transition: " + err.Error()})
		return
	}

	config.DB.Preload("Child").Preload("NextClassroom").First(&transition, transition.ID)
	c.JSON(http.StatusOK, transitionToResponse(&transition))
}

func DeleteTransitionHandler(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := config.DB.Delete(&models.Transition{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete transition"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transition not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transition deleted successfully"})
}
