package services

import (
	"context"

	"github.com/campusvote/pollz/internal/logger"
	"github.com/campusvote/pollz/internal/models"
	"github.com/campusvote/pollz/internal/repository"
)

// CourseService handles course listings, ratings and comments. Ratings are
// upsertable (a user can revise theirs), unlike ballot votes, so no
// duplicate handling applies here; aggregates are recomputed on every write.
type CourseService struct {
	log  logger.Logger
	repo repository.CourseRepository
}

// NewCourseService creates a new CourseService
func NewCourseService(log logger.Logger, repo repository.CourseRepository) *CourseService {
	return &CourseService{log: log, repo: repo}
}

// ListDepartments returns all departments
func (s *CourseService) ListDepartments(ctx context.Context) ([]models.Department, error) {
	return s.repo.ListDepartments(ctx)
}

// List returns active courses matching the filter
func (s *CourseService) List(ctx context.Context, filter repository.CourseFilter) ([]models.Course, error) {
	return s.repo.ListCourses(ctx, filter)
}

// Get returns a course with its comments
func (s *CourseService) Get(ctx context.Context, id int) (*models.Course, []models.Comment, error) {
	course, err := s.repo.GetCourse(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	comments, err := s.repo.ListCourseComments(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return course, comments, nil
}

// RateResult is the outcome of a rating submission
type RateResult struct {
	Created bool           `json:"created"`
	Course  *models.Course `json:"course"`
}

// Rate creates or updates the user's rating for a course and returns the
// course with refreshed averages
func (s *CourseService) Rate(ctx context.Context, userID, courseID int, grading, toughness, overall float64) (*RateResult, error) {
	for _, v := range []float64{grading, toughness, overall} {
		if v < 1 || v > 5 {
			return nil, ErrInvalidRating
		}
	}

	if _, err := s.repo.GetCourse(ctx, courseID); err != nil {
		return nil, err
	}

	created, err := s.repo.UpsertCourseRating(ctx, &models.CourseRating{
		UserID:    userID,
		CourseID:  courseID,
		Grading:   grading,
		Toughness: toughness,
		Overall:   overall,
	})
	if err != nil {
		return nil, err
	}

	course, err := s.repo.GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	s.log.Info("Course rating saved", "course", course.Code, "created", created)
	return &RateResult{Created: created, Course: course}, nil
}

// Comment adds a user comment to a course
func (s *CourseService) Comment(ctx context.Context, userID, courseID int, text string, anonymous bool) error {
	if text == "" {
		return ErrEmptyComment
	}
	if _, err := s.repo.GetCourse(ctx, courseID); err != nil {
		return err
	}
	_, err := s.repo.AddCourseComment(ctx, userID, courseID, text, anonymous)
	return err
}

// CreateDepartment creates a new department
func (s *CourseService) CreateDepartment(ctx context.Context, name, shortName, description string) (int64, error) {
	return s.repo.CreateDepartment(ctx, name, shortName, description)
}

// CreateCourse creates a new course
func (s *CourseService) CreateCourse(ctx context.Context, code, name string, departmentID int, instructor, description string) (int64, error) {
	return s.repo.CreateCourse(ctx, code, name, departmentID, instructor, description)
}
