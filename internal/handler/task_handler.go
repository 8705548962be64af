package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"taskflow/internal/middleware"
	"taskflow/internal/model"
	"taskflow/internal/query"
	"taskflow/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	maxTitleLen       = 100
	maxDescriptionLen = 500
)

type TaskHandler struct {
	taskRepo repository.TaskRepositoryInterface
}

func NewTaskHandler(taskRepo repository.TaskRepositoryInterface) *TaskHandler {
	return &TaskHandler{taskRepo: taskRepo}
}

// CreateTaskRequest carries the client-supplied fields for a new task.
// There is deliberately no owner field; ownership always comes from the
// authenticated identity.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	Priority    string `json:"priority"`
}

// UpdateTaskRequest uses pointers so that an absent field is
// distinguishable from a field explicitly set to its zero value. A due
// date supplied as "" clears the deadline.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"dueDate"`
	Priority    *string `json:"priority"`
	Completed   *bool   `json:"completed"`
}

// currentUserID pulls the authenticated user's UUID out of the gin context.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, errorResponse("Not authenticated"))
		return uuid.Nil, false
	}
	userID, ok := v.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusInternalServerError, errorResponse("Invalid user ID format"))
		return uuid.Nil, false
	}
	return userID, true
}

func validateTitle(title string) (string, string) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", "Task title is required"
	}
	// Limits are in characters, not bytes.
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "", "Title cannot be more than 100 characters"
	}
	return title, ""
}

func validateDescription(desc string) (string, string) {
	desc = strings.TrimSpace(desc)
	if utf8.RuneCountInString(desc) > maxDescriptionLen {
		return "", "Description cannot be more than 500 characters"
	}
	return desc, ""
}

// parseDueDate accepts RFC3339 timestamps or plain YYYY-MM-DD dates.
// An empty string means "no deadline" and yields nil.
func parseDueDate(raw string) (*time.Time, string) {
	if raw == "" {
		return nil, ""
	}
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return &ts, ""
	}
	if ts, err := time.Parse("2006-01-02", raw); err == nil {
		return &ts, ""
	}
	return nil, "Invalid due date format"
}

// List returns the authenticated user's tasks, filtered and ordered per
// the filter, sort and search query parameters.
func (h *TaskHandler) List(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := query.Params{
		Filter: query.ParseFilter(c.Query("filter")),
		Sort:   query.ParseSort(c.Query("sort")),
		Search: c.Query("search"),
	}

	tasks, err := h.taskRepo.GetOwned(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, storeErrorResponse("Error fetching tasks", err))
		return
	}

	view := query.Apply(tasks, params)
	c.JSON(http.StatusOK, listResponse(len(view), view))
}

// Create validates the request and persists a new task owned by the
// authenticated user.
func (h *TaskHandler) Create(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request"))
		return
	}

	title, msg := validateTitle(req.Title)
	if msg != "" {
		c.JSON(http.StatusBadRequest, errorResponse(msg))
		return
	}

	desc, msg := validateDescription(req.Description)
	if msg != "" {
		c.JSON(http.StatusBadRequest, errorResponse(msg))
		return
	}

	priority, ok := model.ParsePriority(req.Priority)
	if !ok {
		c.JSON(http.StatusBadRequest, errorResponse("Priority must be one of: low, medium, high"))
		return
	}

	dueDate, msg := parseDueDate(req.DueDate)
	if msg != "" {
		c.JSON(http.StatusBadRequest, errorResponse(msg))
		return
	}

	task := &model.Task{
		Title:       title,
		Description: desc,
		DueDate:     dueDate,
		Priority:    priority,
		Completed:   false,
		OwnerID:     ownerID,
	}

	if err := h.taskRepo.Create(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, storeErrorResponse("Error creating task", err))
		return
	}

	c.JSON(http.StatusCreated, okResponse("Task created successfully", task))
}

// Update applies only the fields present in the request body to the task,
// after re-validating them. Validation happens before any field is touched,
// so a failed update leaves the task exactly as it was.
func (h *TaskHandler) Update(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid task ID format"))
		return
	}

	// A missing body is an empty partial update, not a bad request.
	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request"))
		return
	}

	task, err := h.taskRepo.GetByIDOwned(c.Request.Context(), taskID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, errorResponse("Task not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, storeErrorResponse("Error updating task", err))
		return
	}

	// Validate every supplied field before mutating anything.
	var (
		title, desc string
		priority    model.Priority
		dueDate     *time.Time
		msg         string
	)
	if req.Title != nil {
		if title, msg = validateTitle(*req.Title); msg != "" {
			c.JSON(http.StatusBadRequest, errorResponse(msg))
			return
		}
	}
	if req.Description != nil {
		if desc, msg = validateDescription(*req.Description); msg != "" {
			c.JSON(http.StatusBadRequest, errorResponse(msg))
			return
		}
	}
	if req.Priority != nil {
		if priority, ok = model.ParsePriority(*req.Priority); !ok {
			c.JSON(http.StatusBadRequest, errorResponse("Priority must be one of: low, medium, high"))
			return
		}
	}
	if req.DueDate != nil {
		// "" clears the deadline; a value replaces it.
		if dueDate, msg = parseDueDate(*req.DueDate); msg != "" {
			c.JSON(http.StatusBadRequest, errorResponse(msg))
			return
		}
	}

	if req.Title != nil {
		task.Title = title
	}
	if req.Description != nil {
		task.Description = desc
	}
	if req.Priority != nil {
		task.Priority = priority
	}
	if req.DueDate != nil {
		task.DueDate = dueDate
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}

	if err := h.taskRepo.Update(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, storeErrorResponse("Error updating task", err))
		return
	}

	c.JSON(http.StatusOK, okResponse("Task updated successfully", task))
}

// Delete removes a task permanently.
func (h *TaskHandler) Delete(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid task ID format"))
		return
	}

	if err := h.taskRepo.DeleteOwned(c.Request.Context(), taskID, ownerID); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, errorResponse("Task not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, storeErrorResponse("Error deleting task", err))
		return
	}

	c.JSON(http.StatusOK, okResponse("Task deleted successfully", nil))
}

// Toggle flips the task's completed flag. No target value is accepted;
// this is strictly a flip.
func (h *TaskHandler) Toggle(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid task ID format"))
		return
	}

	task, err := h.taskRepo.GetByIDOwned(c.Request.Context(), taskID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, errorResponse("Task not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, storeErrorResponse("Error toggling task", err))
		return
	}

	task.Completed = !task.Completed

	if err := h.taskRepo.Update(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, storeErrorResponse("Error toggling task", err))
		return
	}

	msg := "Task marked as pending"
	if task.Completed {
		msg = "Task completed"
	}
	c.JSON(http.StatusOK, okResponse(msg, task))
}
