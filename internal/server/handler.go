package server

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"

	"jobscout/internal/common"
	"jobscout/internal/observability"
)

// multipartMemoryLimit is how much of an upload is kept in memory
// before spilling to disk.
const multipartMemoryLimit = 16 << 20

// createParseHandler serves resume parsing: a multipart PDF upload in
// the "resume" field, with an optional skills=false field to skip AI
// skill extraction.
func (s *Server) createParseHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("jobscout.api")
		ctx, span := tracer.Start(ctx, "api.parse")
		defer span.End()

		path, cleanup, err := s.saveUploadedResume(r)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid resume upload", err.Error(), http.StatusBadRequest)
			return
		}
		defer cleanup()

		withSkills := r.FormValue("skills") != "false"
		span.SetAttributes(
			attribute.String("operation", "parse"),
			attribute.Bool("request.with_skills", withSkills),
		)

		var engine *common.Engine
		if withSkills {
			engine, err = s.getParseEngine()
		} else {
			engine, err = s.getSectionEngine()
		}
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeErrorResponse(w, "Failed to initialize parser", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics := om.GetMetrics()
		result, err := engine.ParseResume(ctx, path)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "processing"))
			metrics.RecordBusinessMetric(ctx, "resume_parsed", false, om,
				attribute.String("error", err.Error()))
			writeErrorResponse(w, "Failed to parse resume", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics.RecordBusinessMetric(ctx, "resume_parsed", true, om,
			attribute.Int("output.sections", len(result.Sections)),
			attribute.Bool("output.experience_known", result.Experience.Known))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.sections", len(result.Sections)),
			attribute.Int("response.skills", len(result.Skills)),
		)

		writeJSONResponse(w, span, result)
	}
}

// createResearchHandler serves company research: a JSON body with a
// "companies" list.
func (s *Server) createResearchHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("jobscout.api")
		ctx, span := tracer.Start(ctx, "api.research")
		defer span.End()

		var req ResearchRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		companies, err := common.ValidateCompanies(req.Companies)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid company list", err.Error(), http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.String("operation", "research"),
			attribute.Int("request.companies", len(companies)),
		)

		engine, err := s.getResearchEngine()
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeErrorResponse(w, "Failed to initialize research pipeline", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics := om.GetMetrics()
		result, err := engine.ResearchCompanies(ctx, companies)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "processing"))
			metrics.RecordBusinessMetric(ctx, "companies_researched", false, om,
				attribute.String("error", err.Error()))
			writeErrorResponse(w, "Failed to research companies", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics.RecordBusinessMetric(ctx, "companies_researched", true, om,
			attribute.Int("output.companies", len(result.Companies)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.companies", len(result.Companies)),
		)

		writeJSONResponse(w, span, result)
	}
}

// createReportHandler serves full report composition: a multipart
// upload with the resume PDF, a "companies" field (comma-separated or
// repeated), and an optional candidate "name".
func (s *Server) createReportHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("jobscout.api")
		ctx, span := tracer.Start(ctx, "api.report")
		defer span.End()

		path, cleanup, err := s.saveUploadedResume(r)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid resume upload", err.Error(), http.StatusBadRequest)
			return
		}
		defer cleanup()

		companies, err := common.ValidateCompanies(splitCompanies(r.Form["companies"]))
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid company list", "companies field is required", http.StatusBadRequest)
			return
		}
		candidateName := r.FormValue("name")

		span.SetAttributes(
			attribute.String("operation", "report"),
			attribute.Int("request.companies", len(companies)),
		)

		engine, err := s.getReportEngine()
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeErrorResponse(w, "Failed to initialize report pipeline", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics := om.GetMetrics()
		result, err := engine.BuildReport(ctx, path, candidateName, companies)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "processing"))
			metrics.RecordBusinessMetric(ctx, "report_composed", false, om,
				attribute.String("error", err.Error()))
			writeErrorResponse(w, "Failed to compose report", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics.RecordBusinessMetric(ctx, "report_composed", true, om,
			attribute.Int("output.report_length", len(result.Report)),
			attribute.Int("output.companies", len(result.Companies)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.report_length", len(result.Report)),
		)

		writeJSONResponse(w, span, result)
	}
}

// saveUploadedResume copies the "resume" multipart field into a
// temporary file and returns its path with a cleanup func.
func (s *Server) saveUploadedResume(r *http.Request) (string, func(), error) {
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		return "", nil, fmt.Errorf("expected multipart form data: %w", err)
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		return "", nil, fmt.Errorf("resume file field is required: %w", err)
	}

	path, err := s.copyToTempFile(file, header)
	if err != nil {
		_ = file.Close()
		return "", nil, err
	}
	_ = file.Close()

	cleanup := func() {
		if err := os.Remove(path); err != nil && s.Logger != nil {
			s.Logger.Warn("Failed to remove uploaded resume", "path", path, "error", err)
		}
	}
	return path, cleanup, nil
}

func (s *Server) copyToTempFile(file multipart.File, header *multipart.FileHeader) (string, error) {
	ext := filepath.Ext(header.Filename)
	if ext == "" {
		ext = ".pdf"
	}

	tmp, err := os.CreateTemp("", "upload-*"+ext)
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}

	if _, err := io.Copy(tmp, file); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to store uploaded resume: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to store uploaded resume: %w", err)
	}

	return tmp.Name(), nil
}

// splitCompanies flattens repeated form values and comma-separated
// lists into one slice.
func splitCompanies(values []string) []string {
	var companies []string
	for _, value := range values {
		for part := range strings.SplitSeq(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				companies = append(companies, part)
			}
		}
	}
	return companies
}

// writeJSONResponse encodes the payload, recording encode failures on
// the span.
func writeJSONResponse(w http.ResponseWriter, span oteltrace.Span, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		span.RecordError(err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// createRateLimitMiddleware wraps the rate limiter so 429 responses
// are also counted as infrastructure metrics.
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	limit := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return limit(func(w http.ResponseWriter, r *http.Request) {
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}

			next(wrapper, r)

			if wrapper.statusCode == http.StatusTooManyRequests {
				om.GetMetrics().RecordBusinessMetric(r.Context(), "rate_limit_hit", true, om,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper captures the response status code for metrics.
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
