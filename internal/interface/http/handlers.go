package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/aja-school/aja-fees-hub/internal/application/command"
	"github.com/aja-school/aja-fees-hub/internal/application/query"
	"github.com/aja-school/aja-fees-hub/internal/domain/shared"
	"github.com/aja-school/aja-fees-hub/internal/domain/student"
	"github.com/aja-school/aja-fees-hub/pkg/logger"
)

// maxRequestBody caps the JSON request body size.
const maxRequestBody = 64 << 10 // 64 KB

// validate checks incoming request DTOs. Field names in error messages come
// from the json tag, so clients see the name they actually sent.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ══════════════════════════════════════════════════════════════════════════════
// REQUEST / RESPONSE DTOs
// ══════════════════════════════════════════════════════════════════════════════

// createStudentRequest is the enrollment payload.
type createStudentRequest struct {
	AdmissionNo string `json:"admission_no"`
	FirstName   string `json:"first_name" validate:"required"`
	MiddleName  string `json:"middle_name" validate:"required"`
	FamilyName  string `json:"family_name"`
	Grade       string `json:"grade" validate:"required"`

	Food           bool `json:"food"`
	TextBooks      bool `json:"text_books"`
	ExerciseBooks  bool `json:"exercise_books"`
	AssessmentTool bool `json:"assesment_tool"`

	TransportMode string `json:"transport_mode"`
	AmountPaid    int    `json:"amount_paid" validate:"min=0"`
}

// createStudentResponse echoes the allocated number and computed amounts.
type createStudentResponse struct {
	AdmissionNo string    `json:"admission_no"`
	TotalFee    int       `json:"total_fee"`
	Balance     int       `json:"balance"`
	CreatedAt   time.Time `json:"created_at"`
}

// studentResponse is the full fee record representation. The misspelled
// assessment field matches the stored record format.
type studentResponse struct {
	AdmissionNo    string    `json:"admission_no"`
	FirstName      string    `json:"first_name"`
	MiddleName     string    `json:"middle_name"`
	FamilyName     string    `json:"family_name,omitempty"`
	Name           string    `json:"name"`
	Grade          string    `json:"grade"`
	Tuition        int       `json:"tuition_fee"`
	Food           int       `json:"food_fee"`
	TextBooks      int       `json:"text_books_fee"`
	ExerciseBooks  int       `json:"exercise_books_fee"`
	AssessmentTool int       `json:"assesment_tool_fee"`
	Transport      int       `json:"transport_fee"`
	Activity       int       `json:"activity_fee"`
	Diary          int       `json:"diary_fee"`
	Admission      int       `json:"admission_fee"`
	TotalFee       int       `json:"total_fee"`
	AmountPaid     int       `json:"amount_paid"`
	Balance        int       `json:"balance"`
	TransportMode  string    `json:"transport_mode"`
	CreatedAt      time.Time `json:"created_at"`
}

func toStudentResponse(s *student.Student) studentResponse {
	return studentResponse{
		AdmissionNo:    s.AdmissionNo.String(),
		FirstName:      s.FirstName,
		MiddleName:     s.MiddleName,
		FamilyName:     s.FamilyName,
		Name:           s.FullName(),
		Grade:          s.Grade.String(),
		Tuition:        s.Fees.Tuition,
		Food:           s.Fees.Food,
		TextBooks:      s.Fees.TextBooks,
		ExerciseBooks:  s.Fees.ExerciseBooks,
		AssessmentTool: s.Fees.AssessmentTool,
		Transport:      s.Fees.Transport,
		Activity:       s.Fees.Activity,
		Diary:          s.Fees.Diary,
		Admission:      s.Fees.Admission,
		TotalFee:       s.TotalFee,
		AmountPaid:     s.AmountPaid,
		Balance:        s.Balance,
		TransportMode:  s.TransportMode.String(),
		CreatedAt:      s.CreatedAt,
	}
}

// notifyRequest is the statement dispatch payload.
type notifyRequest struct {
	To string `json:"to" validate:"required"`
}

// notifyResponse confirms a dispatched statement link.
type notifyResponse struct {
	DeliveryID    string    `json:"delivery_id"`
	Channel       string    `json:"channel"`
	To            string    `json:"to"`
	CorrelationID string    `json:"correlation_id"`
	SentAt        time.Time `json:"sent_at"`
}

// ══════════════════════════════════════════════════════════════════════════════
// HEALTH & STATUS HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleRoot serves the root endpoint with basic API information.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeJSONError(w, http.StatusNotFound, "not_found", "Unknown endpoint")
		return
	}

	info := map[string]interface{}{
		"name":        "AJA School Fees Hub API",
		"version":     "v1",
		"description": "REST API for AJA School fee records and statements",
		"endpoints": map[string]string{
			"health":       "/health",
			"students":     "/api/v1/students",
			"statement":    "/api/v1/students/{admission_no}/statement",
			"notify":       "/api/v1/students/{admission_no}/notify",
			"fee_register": "/api/v1/reports/fee-register",
		},
	}

	writeJSON(w, http.StatusOK, info)
}

// handleHealth handles the health check endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{}
	healthy := true

	if s.deps.Database != nil {
		if err := s.deps.Database.Ping(r.Context()); err != nil {
			checks["database"] = "unreachable"
			healthy = false
		} else {
			checks["database"] = "ok"
		}
	}
	if s.deps.Cache != nil {
		if err := s.deps.Cache.Ping(r.Context()); err != nil {
			checks["cache"] = "unreachable"
		} else {
			checks["cache"] = "ok"
		}
	}

	status := map[string]interface{}{
		"status": "healthy",
		"uptime": s.Uptime().String(),
		"checks": checks,
	}

	if !healthy {
		status["status"] = "unhealthy"
		writeJSON(w, http.StatusServiceUnavailable, status)
		return
	}

	writeJSON(w, http.StatusOK, status)
}

// handleReady handles the readiness probe endpoint (for Kubernetes).
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.deps.Database != nil {
		if err := s.deps.Database.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not_ready",
				"reason": "database unreachable",
			})
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleLive handles the liveness probe endpoint (for Kubernetes).
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// ══════════════════════════════════════════════════════════════════════════════
// FEE RECORD HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleCreateStudent handles POST /api/v1/students
func (s *Server) handleCreateStudent(w http.ResponseWriter, r *http.Request) {
	if s.deps.EnrollStudentHandler == nil {
		writeJSONError(w, http.StatusNotImplemented, "not_implemented", "Enrollment handler not configured")
		return
	}

	var req createStudentRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if !s.validateBody(w, req) {
		return
	}

	cmd := command.EnrollStudentCommand{
		AdmissionNo:    req.AdmissionNo,
		FirstName:      req.FirstName,
		MiddleName:     req.MiddleName,
		FamilyName:     req.FamilyName,
		Grade:          req.Grade,
		Food:           req.Food,
		TextBooks:      req.TextBooks,
		ExerciseBooks:  req.ExerciseBooks,
		AssessmentTool: req.AssessmentTool,
		TransportMode:  req.TransportMode,
		AmountPaid:     req.AmountPaid,
	}

	result, err := s.deps.EnrollStudentHandler.Handle(r.Context(), cmd)
	if err != nil {
		s.writeDomainError(w, r, err, "failed to enroll student")
		return
	}

	writeJSON(w, http.StatusCreated, createStudentResponse{
		AdmissionNo: result.AdmissionNo.String(),
		TotalFee:    result.TotalFee,
		Balance:     result.Balance,
		CreatedAt:   result.CreatedAt,
	})
}

// handleGetStudent handles GET /api/v1/students/{admission_no}
func (s *Server) handleGetStudent(w http.ResponseWriter, r *http.Request) {
	no := r.PathValue("admission_no")
	if no == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Admission number is required")
		return
	}

	if s.deps.GetStudentHandler == nil {
		writeJSONError(w, http.StatusNotImplemented, "not_implemented", "Student handler not configured")
		return
	}

	record, err := s.deps.GetStudentHandler.Handle(r.Context(), query.GetStudentQuery{AdmissionNo: no})
	if err != nil {
		s.writeDomainError(w, r, err, "failed to get student")
		return
	}

	writeJSON(w, http.StatusOK, toStudentResponse(record))
}

// handleListStudents handles GET /api/v1/students
func (s *Server) handleListStudents(w http.ResponseWriter, r *http.Request) {
	if s.deps.ListStudentsHandler == nil {
		writeJSONError(w, http.StatusNotImplemented, "not_implemented", "List handler not configured")
		return
	}

	q := query.ListStudentsQuery{
		Limit:  getQueryParamInt(r, "limit", 50),
		Offset: getQueryParamInt(r, "offset", 0),
	}

	result, err := s.deps.ListStudentsHandler.Handle(r.Context(), q)
	if err != nil {
		s.writeDomainError(w, r, err, "failed to list students")
		return
	}

	records := make([]studentResponse, 0, len(result.Students))
	for _, rec := range result.Students {
		records = append(records, toStudentResponse(rec))
	}

	meta := &ResponseMeta{
		TotalCount: result.Total,
		PageSize:   result.Limit,
		HasMore:    result.Offset+len(records) < result.Total,
	}

	writeJSONWithMeta(w, r, http.StatusOK, records, meta)
}

// handleGetStatement handles GET /api/v1/students/{admission_no}/statement
func (s *Server) handleGetStatement(w http.ResponseWriter, r *http.Request) {
	no := r.PathValue("admission_no")
	if no == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Admission number is required")
		return
	}

	if s.deps.GetStatementHandler == nil {
		writeJSONError(w, http.StatusNotImplemented, "not_implemented", "Statement handler not configured")
		return
	}

	result, err := s.deps.GetStatementHandler.Handle(r.Context(), query.GetStatementQuery{AdmissionNo: no})
	if err != nil {
		s.writeDomainError(w, r, err, "failed to render statement")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(result.Document)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Document)
}

// handleNotify handles POST /api/v1/students/{admission_no}/notify
func (s *Server) handleNotify(w http.ResponseWriter, r *http.Request) {
	no := r.PathValue("admission_no")
	if no == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Admission number is required")
		return
	}

	if s.deps.DispatchStatementHandler == nil {
		writeJSONError(w, http.StatusNotImplemented, "not_implemented", "Notification handler not configured")
		return
	}

	var req notifyRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if !s.validateBody(w, req) {
		return
	}

	result, err := s.deps.DispatchStatementHandler.Handle(r.Context(), command.DispatchStatementCommand{
		AdmissionNo: no,
		To:          req.To,
	})
	if err != nil {
		s.writeDomainError(w, r, err, "failed to dispatch statement link")
		return
	}

	writeJSON(w, http.StatusOK, notifyResponse{
		DeliveryID:    result.Delivery.ID,
		Channel:       string(result.Delivery.Channel),
		To:            result.Delivery.To,
		CorrelationID: result.Delivery.CorrelationID,
		SentAt:        result.Delivery.SentAt,
	})
}

// ══════════════════════════════════════════════════════════════════════════════
// REPORT HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleFeeRegister handles GET /api/v1/reports/fee-register
func (s *Server) handleFeeRegister(w http.ResponseWriter, r *http.Request) {
	if s.deps.ListStudentsHandler == nil || s.deps.FeeRegister == nil {
		writeJSONError(w, http.StatusNotImplemented, "not_implemented", "Report handler not configured")
		return
	}

	result, err := s.deps.ListStudentsHandler.Handle(r.Context(), query.ListStudentsQuery{
		Limit: getQueryParamInt(r, "limit", 10000),
	})
	if err != nil {
		s.writeDomainError(w, r, err, "failed to load records for register")
		return
	}

	workbook, err := s.deps.FeeRegister.Render(result.Students)
	if err != nil {
		s.writeDomainError(w, r, err, "failed to render fee register")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", s.deps.FeeRegister.Filename()))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(workbook)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(workbook)
}

// ══════════════════════════════════════════════════════════════════════════════
// REQUEST DECODING & ERROR MAPPING
// ══════════════════════════════════════════════════════════════════════════════

// decodeBody decodes a JSON request body into dst. On failure it writes a 400
// response and returns false.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	body := http.MaxBytesReader(w, r.Body, maxRequestBody)
	defer func() { _, _ = io.Copy(io.Discard, body) }()

	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_json", "Request body is not valid JSON")
		return false
	}
	return true
}

// validateBody validates a decoded request DTO. On failure it writes a 400
// response naming the first missing field and returns false.
func (s *Server) validateBody(w http.ResponseWriter, dst interface{}) bool {
	err := validate.Struct(dst)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Tag() == "required" {
			writeJSONError(w, http.StatusBadRequest, "missing_field",
				fmt.Sprintf("missing field %s", fe.Field()))
			return false
		}
		writeJSONError(w, http.StatusBadRequest, "validation_failed",
			fmt.Sprintf("invalid value for field %s", fe.Field()))
		return false
	}

	writeJSONError(w, http.StatusBadRequest, "validation_failed", "Request validation failed")
	return false
}

// writeDomainError maps domain errors onto HTTP status codes.
func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error, logMsg string) {
	switch {
	case shared.IsMissingField(err), shared.IsValidation(err):
		writeJSONError(w, http.StatusBadRequest, "validation_failed", err.Error())
	case shared.IsNotFound(err):
		writeJSONError(w, http.StatusNotFound, "not_found", "Record not found")
	case shared.IsAlreadyExists(err):
		writeJSONError(w, http.StatusBadRequest, "duplicate_admission_no", "Admission number already in use")
	case shared.IsDispatchFailed(err):
		s.logger.Error(logMsg, logger.Err(err), logger.String("request_id", getRequestID(r.Context())))
		writeJSONError(w, http.StatusBadGateway, "dispatch_failed", "Messaging provider rejected the request")
	default:
		s.logger.Error(logMsg, logger.Err(err), logger.String("request_id", getRequestID(r.Context())))
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
