package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/edutrack/backend/internal/dto"
	"github.com/edutrack/backend/internal/model"
	"github.com/edutrack/backend/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// certificateThreshold is the course average required for a certificate.
const certificateThreshold = 70.0

var ErrNotEligible = errors.New("course average is below the certificate threshold")

// GradeService reads and writes the grade ledger: transcripts, course
// averages, GPA, manual teacher grading and certificate eligibility.
type GradeService interface {
	Transcript(caller Identity) (*dto.TranscriptDTO, error)
	CourseGrades(caller Identity, courseID uint) (*dto.CourseGradesDTO, error)
	RecordGrade(caller Identity, courseID, studentID uint, req dto.GradeCreateDTO) (*dto.GradeResponseDTO, error)
	Certificate(caller Identity, courseID uint) (*dto.CertificateDTO, error)
}

type gradeService struct {
	gradeRepo      repository.GradeRepository
	courseRepo     repository.CourseRepository
	enrollmentRepo repository.EnrollmentRepository
}

func NewGradeService(
	gradeRepo repository.GradeRepository,
	courseRepo repository.CourseRepository,
	enrollmentRepo repository.EnrollmentRepository,
) GradeService {
	return &gradeService{
		gradeRepo:      gradeRepo,
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

// averageScore is the arithmetic mean of non-null scores, zero for an empty
// set.
func averageScore(grades []model.Grade) float64 {
	sum := 0.0
	count := 0
	for _, g := range grades {
		if g.Score != nil {
			sum += *g.Score
			count++
		}
	}
	if count == 0 {
		return 0.0
	}
	return sum / float64(count)
}

func gradeToDTO(g *model.Grade) dto.GradeResponseDTO {
	return dto.GradeResponseDTO{
		ID:             g.ID,
		UserID:         g.UserID,
		CourseID:       g.CourseID,
		AssignmentName: g.AssignmentName,
		Score:          g.Score,
		MaxScore:       g.MaxScore,
		LetterGrade:    g.LetterGrade(),
		Feedback:       g.Feedback,
		GradedAt:       g.GradedAt,
	}
}

func (s *gradeService) Transcript(caller Identity) (*dto.TranscriptDTO, error) {
	grades, err := s.gradeRepo.FindAllByUser(caller.UserID)
	if err != nil {
		log.Error().Err(err).Uint("userID", caller.UserID).Msg("Transcript: failed to fetch grades")
		return nil, fmt.Errorf("error fetching grades: %w", err)
	}

	byCourse := make(map[uint][]model.Grade)
	var courseOrder []uint
	for _, g := range grades {
		if _, seen := byCourse[g.CourseID]; !seen {
			courseOrder = append(courseOrder, g.CourseID)
		}
		byCourse[g.CourseID] = append(byCourse[g.CourseID], g)
	}

	transcript := &dto.TranscriptDTO{OverallGPA: averageScore(grades)}
	for _, courseID := range courseOrder {
		courseGrades := byCourse[courseID]
		title := ""
		if course, err := s.courseRepo.FindByID(courseID); err == nil {
			title = course.Title
		}
		entry := dto.CourseGradesDTO{
			CourseID:    courseID,
			CourseTitle: title,
			Average:     averageScore(courseGrades),
		}
		for i := range courseGrades {
			entry.Grades = append(entry.Grades, gradeToDTO(&courseGrades[i]))
		}
		transcript.Courses = append(transcript.Courses, entry)
	}
	return transcript, nil
}

func (s *gradeService) CourseGrades(caller Identity, courseID uint) (*dto.CourseGradesDTO, error) {
	course, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		return nil, fmt.Errorf("course not found with ID %d: %w", courseID, err)
	}

	grades, err := s.gradeRepo.FindAllByUserAndCourse(caller.UserID, courseID)
	if err != nil {
		return nil, fmt.Errorf("error fetching grades: %w", err)
	}

	result := &dto.CourseGradesDTO{
		CourseID:    courseID,
		CourseTitle: course.Title,
		Average:     averageScore(grades),
	}
	for i := range grades {
		result.Grades = append(result.Grades, gradeToDTO(&grades[i]))
	}
	return result, nil
}

// RecordGrade is the manual teacher grading flow writing into the same ledger
// quiz completion writes into.
func (s *gradeService) RecordGrade(caller Identity, courseID, studentID uint, req dto.GradeCreateDTO) (*dto.GradeResponseDTO, error) {
	course, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		return nil, fmt.Errorf("course not found with ID %d: %w", courseID, err)
	}
	if !caller.IsAdmin() && (!caller.IsTeacher() || course.InstructorID != caller.UserID) {
		return nil, ErrForbidden
	}
	if _, err := s.enrollmentRepo.FindByUserAndCourse(studentID, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotEnrolled
		}
		return nil, fmt.Errorf("failed to check enrollment: %w", err)
	}

	score := req.Score
	grade := model.Grade{
		UserID:         studentID,
		CourseID:       courseID,
		AssignmentName: req.AssignmentName,
		Score:          &score,
		MaxScore:       100.0,
		Feedback:       req.Feedback,
		GradedAt:       time.Now(),
	}
	if err := s.gradeRepo.Create(&grade); err != nil {
		log.Error().Err(err).Uint("courseID", courseID).Uint("studentID", studentID).Msg("RecordGrade: failed to persist grade")
		return nil, fmt.Errorf("failed to record grade: %w", err)
	}

	resp := gradeToDTO(&grade)
	return &resp, nil
}

// Certificate checks eligibility and synthesizes a certificate identifier.
// The identifier is generated, not stored; requesting it again yields a
// different one.
func (s *gradeService) Certificate(caller Identity, courseID uint) (*dto.CertificateDTO, error) {
	course, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		return nil, fmt.Errorf("course not found with ID %d: %w", courseID, err)
	}
	if _, err := s.enrollmentRepo.FindByUserAndCourse(caller.UserID, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotEnrolled
		}
		return nil, fmt.Errorf("failed to check enrollment: %w", err)
	}

	grades, err := s.gradeRepo.FindAllByUserAndCourse(caller.UserID, courseID)
	if err != nil {
		return nil, fmt.Errorf("error fetching grades: %w", err)
	}
	average := averageScore(grades)
	if len(grades) == 0 || average < certificateThreshold {
		return nil, ErrNotEligible
	}

	issued := time.Now()
	return &dto.CertificateDTO{
		CertificateID: fmt.Sprintf("CERT-%d-%d-%d-%s", courseID, caller.UserID, issued.Unix(), uuid.NewString()[:8]),
		CourseID:      courseID,
		CourseTitle:   course.Title,
		UserID:        caller.UserID,
		AverageScore:  average,
		IssuedAt:      issued,
	}, nil
}
