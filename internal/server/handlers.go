package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/server/middleware"
)

// Multipart field names accepted by POST /analyze.
const (
	fieldResume             = "resume"
	fieldJobDescriptionText = "job_description_text"
	fieldJobDescriptionFile = "job_description"
)

// multipartMemory is how much of a multipart body is held in memory before spilling to disk.
const multipartMemory = 1 << 20

// resumeFormats are the decoders a resume upload may use.
var resumeFormats = map[ingestion.Format]bool{
	ingestion.FormatText: true,
	ingestion.FormatPDF:  true,
	ingestion.FormatDOCX: true,
}

// AnalyzeRequest is the JSON body accepted by POST /analyze.
type AnalyzeRequest struct {
	ResumeText         string `json:"resume_text" validate:"required"`
	JobDescriptionText string `json:"job_description_text" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// handleAnalyze scores a resume against a job description.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	resumeText, jdText, err := s.readAnalyzeInput(r)
	if err != nil {
		s.logger.Info("rejected analyze request",
			zap.String("request_id", middleware.GetRequestID(r)),
			zap.Error(err),
		)
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	start := time.Now()
	report := s.analyzer.Analyze(resumeText, jdText)
	s.metrics.ObserveAnalysis(report, time.Since(start))

	if !report.Success {
		s.logger.Error("analysis failed",
			zap.String("request_id", middleware.GetRequestID(r)),
			zap.String("error", report.Error),
		)
		s.jsonResponse(w, http.StatusInternalServerError, report)
		return
	}
	s.jsonResponse(w, http.StatusOK, report)
}

// readAnalyzeInput returns the resume and job description text from either a multipart
// upload or a JSON body.
func (s *Server) readAnalyzeInput(r *http.Request) (string, string, error) {
	contentType := r.Header.Get("Content-Type")
	mediaType := "application/json"
	if contentType != "" {
		var err error
		mediaType, _, err = mime.ParseMediaType(contentType)
		if err != nil {
			return "", "", &ErrUnsupportedMediaType{ContentType: contentType}
		}
	}

	switch mediaType {
	case "multipart/form-data":
		return s.readMultipart(r)
	case "application/json":
		return s.readJSON(r)
	default:
		return "", "", &ErrUnsupportedMediaType{ContentType: mediaType}
	}
}

func (s *Server) readJSON(r *http.Request) (string, string, error) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if isTooLarge(err) {
			return "", "", &ErrPayloadTooLarge{Limit: s.maxUploadBytes}
		}
		return "", "", &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}

	req.ResumeText = strings.TrimSpace(req.ResumeText)
	req.JobDescriptionText = strings.TrimSpace(req.JobDescriptionText)
	if err := validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return "", "", &ErrValidation{Field: fieldErrs[0].Field(), Message: "is required"}
		}
		return "", "", &ErrValidation{Field: "body", Message: err.Error()}
	}
	return req.ResumeText, req.JobDescriptionText, nil
}

func (s *Server) readMultipart(r *http.Request) (string, string, error) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		if isTooLarge(err) {
			return "", "", &ErrPayloadTooLarge{Limit: s.maxUploadBytes}
		}
		return "", "", &ErrValidation{Field: "body", Message: "invalid multipart form: " + err.Error()}
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll() //nolint:errcheck
	}

	file, header, err := r.FormFile(fieldResume)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", "", &ErrValidation{Field: fieldResume, Message: "no resume file provided"}
		}
		return "", "", &ErrValidation{Field: fieldResume, Message: err.Error()}
	}
	defer file.Close() //nolint:errcheck

	resume, err := readUpload(file, header, fieldResume, resumeFormats)
	if err != nil {
		return "", "", err
	}

	jd := strings.TrimSpace(r.FormValue(fieldJobDescriptionText))
	if jd == "" {
		jd, err = readOptionalFile(r, fieldJobDescriptionFile)
		if err != nil {
			return "", "", err
		}
	}
	if jd == "" {
		return "", "", &ErrValidation{Field: fieldJobDescriptionText, Message: "no job description provided"}
	}
	return resume, jd, nil
}

func readOptionalFile(r *http.Request, field string) (string, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", &ErrValidation{Field: field, Message: err.Error()}
	}
	defer file.Close() //nolint:errcheck
	return readUpload(file, header, field, nil)
}

// readUpload decodes one uploaded file. A nil allowed set accepts every supported format.
func readUpload(file multipart.File, header *multipart.FileHeader, field string, allowed map[ingestion.Format]bool) (string, error) {
	if header.Filename == "" {
		return "", &ErrValidation{Field: field, Message: "no selected file"}
	}

	format, err := ingestion.DetectFormat(header.Filename)
	if err != nil {
		return "", err
	}
	if allowed != nil && !allowed[format] {
		return "", fmt.Errorf("%w: %s not accepted for %s", ingestion.ErrUnsupportedType, format, field)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read %s upload: %w", field, err)
	}

	doc, err := ingestion.ExtractDocument(header.Filename, data)
	if err != nil {
		return "", err
	}
	return doc.Text, nil
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr) || errors.Is(err, multipart.ErrMessageTooLarge)
}
