package handlers

import (
	"net/http"

	"github.com/campusvote/pollz/internal/auth"
	"github.com/campusvote/pollz/internal/repository"
)

// handleListDepartments returns all departments
func (h *Handlers) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.Courses.ListDepartments(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, departments)
}

// handleListCourses returns active courses, filterable by ?search=,
// ?department= and ?sort=
func (h *Handlers) handleListCourses(w http.ResponseWriter, r *http.Request) {
	filter := repository.CourseFilter{
		Search:     r.URL.Query().Get("search"),
		Department: r.URL.Query().Get("department"),
		SortBy:     r.URL.Query().Get("sort"),
	}

	courses, err := h.Courses.List(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, courses)
}

// handleGetCourse returns one course with its comments
func (h *Handlers) handleGetCourse(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	course, comments, err := h.Courses.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, CourseDetailResponse{Course: course, Comments: comments})
}

// handleRateCourse creates or revises the caller's rating of a course
func (h *Handlers) handleRateCourse(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respondError(w, Unauthorized("Unauthorized"))
		return
	}

	courseID, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req CourseRatingRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	result, err := h.Courses.Rate(r.Context(), userID, courseID, req.Grading, req.Toughness, req.Overall)
	if err != nil {
		respondError(w, err)
		return
	}
	if result.Created {
		respondCreated(w, result)
		return
	}
	respondOK(w, result)
}

// handleCourseComment adds a comment to a course
func (h *Handlers) handleCourseComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respondError(w, Unauthorized("Unauthorized"))
		return
	}

	courseID, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req CommentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Courses.Comment(r.Context(), userID, courseID, req.Text, req.Anonymous); err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, map[string]string{"message": "Comment added"})
}

// handleCreateDepartment creates a department (admin)
func (h *Handlers) handleCreateDepartment(w http.ResponseWriter, r *http.Request) {
	var req DepartmentCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.Name == "" || req.ShortName == "" {
		respondError(w, BadRequest("name and short_name are required"))
		return
	}

	id, err := h.Courses.CreateDepartment(r.Context(), req.Name, req.ShortName, req.Description)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, CreatedResponse{ID: id})
}

// handleCreateCourse creates a course (admin)
func (h *Handlers) handleCreateCourse(w http.ResponseWriter, r *http.Request) {
	var req CourseCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.Code == "" || req.Name == "" || req.DepartmentID == 0 {
		respondError(w, BadRequest("code, name and department_id are required"))
		return
	}

	id, err := h.Courses.CreateCourse(r.Context(), req.Code, req.Name, req.DepartmentID, req.Instructor, req.Description)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, CreatedResponse{ID: id})
}

// handleVotingStats returns platform-wide participation counters
func (h *Handlers) handleVotingStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Stats.VotingStats(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, stats)
}
