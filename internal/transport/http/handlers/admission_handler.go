package handlers

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/lukam/admitly/internal/service"
	"github.com/lukam/admitly/internal/storage"
	"github.com/lukam/admitly/internal/transport/http/middleware"
	"github.com/lukam/admitly/pkg/validator"
)

const maxUploadMemory = 32 << 20

type AdmissionHandler struct {
	admissionService *service.AdmissionService
	files            *storage.Store
	log              *logrus.Logger
}

func NewAdmissionHandler(admissionService *service.AdmissionService, files *storage.Store, log *logrus.Logger) *AdmissionHandler {
	return &AdmissionHandler{admissionService: admissionService, files: files, log: log}
}

// SubmitBio handles the multipart bio form. name, age and specialization are
// required; marks are coerced with no presence check, so a missing mark reads
// as zero. Uploaded certificates replace the previous list wholesale.
func (h *AdmissionHandler) SubmitBio(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	name := r.FormValue("name")
	ageStr := r.FormValue("age")
	specialization := r.FormValue("specialization")

	if errs := validator.ValidateBio(name, ageStr, specialization); errs.HasErrors() {
		writeError(w, http.StatusBadRequest, errs.Message())
		return
	}

	age, err := strconv.Atoi(ageStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Age must be a number")
		return
	}

	marks10th := parseMarks(r.FormValue("marks10th"))
	marks12th := parseMarks(r.FormValue("marks12th"))

	certificates := []string{}
	for _, fh := range r.MultipartForm.File["certificates"] {
		src, err := fh.Open()
		if err != nil {
			h.log.WithError(err).Error("opening certificate upload")
			writeError(w, http.StatusInternalServerError, "Could not store certificate")
			return
		}
		stored, err := h.files.Save(src, fh.Filename)
		src.Close()
		if err != nil {
			h.log.WithError(err).Error("storing certificate")
			writeError(w, http.StatusInternalServerError, "Could not store certificate")
			return
		}
		certificates = append(certificates, stored)
	}

	bio, err := h.admissionService.SubmitBio(r.Context(), userID, service.BioInput{
		Name:           name,
		Age:            age,
		Specialization: specialization,
		Marks10th:      marks10th,
		Marks12th:      marks12th,
		Certificates:   certificates,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserMissing) {
			writeError(w, http.StatusNotFound, err.Error())
		} else {
			h.log.WithError(err).Error("submitting bio data")
			writeError(w, http.StatusInternalServerError, "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"bioData": bio})
}

// parseMarks coerces a marks field to a finite number. Absent, malformed and
// non-finite values all read as zero; jsonb cannot hold NaN or Inf.
func parseMarks(raw string) float64 {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Courses answers GET /courses: eligible courses plus applied courses
// populated with full catalog records.
func (h *AdmissionHandler) Courses(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	result, err := h.admissionService.Discover(r.Context(), userID, true)
	if err != nil {
		h.writeDiscoveryError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"availableCourses": result.Available,
		"appliedCourses":   result.Applied,
	})
}

// UserCourses answers GET /user: same discovery, but applied courses stay raw
// identifier references.
func (h *AdmissionHandler) UserCourses(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	result, err := h.admissionService.Discover(r.Context(), userID, false)
	if err != nil {
		h.writeDiscoveryError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"availableCourses": result.Available,
		"appliedCourses":   result.AppliedIDs,
	})
}

func (h *AdmissionHandler) writeDiscoveryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUserMissing):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNoBioData):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.WithError(err).Error("course discovery")
		writeError(w, http.StatusInternalServerError, "Something went wrong")
	}
}

// ApplyDirect handles POST /apply/{courseId}: appends unconditionally and
// moves the application status to Under Review.
func (h *AdmissionHandler) ApplyDirect(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	courseID, err := uuid.Parse(r.PathValue("courseId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid course ID")
		return
	}

	user, err := h.admissionService.ApplyDirect(r.Context(), userID, courseID)
	if err != nil {
		if errors.Is(err, service.ErrUserMissing) {
			writeError(w, http.StatusNotFound, err.Error())
		} else {
			h.log.WithError(err).Error("applying to course")
			writeError(w, http.StatusInternalServerError, "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Course application recorded",
		"user":    user,
	})
}

type applyCourseInput struct {
	CourseID string `json:"courseId"`
}

// ApplyGuarded handles POST /apply-course: duplicate applications are
// rejected and the application status is left untouched.
func (h *AdmissionHandler) ApplyGuarded(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var input applyCourseInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if input.CourseID == "" {
		writeError(w, http.StatusBadRequest, "Course ID is required")
		return
	}

	courseID, err := uuid.Parse(input.CourseID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid course ID")
		return
	}

	if err := h.admissionService.ApplyGuarded(r.Context(), userID, courseID); err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyApplied):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrUserMissing):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			h.log.WithError(err).Error("applying to course")
			writeError(w, http.StatusInternalServerError, "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Applied to course"})
}
