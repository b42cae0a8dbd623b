package validator

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/futig/ai-tutor/internal/config"
	"github.com/futig/ai-tutor/internal/entity"
)

// Validator checks request parameters coming from presentation layers
type Validator struct {
	cfg     config.SessionConfig
	formats []entity.ResultFormat
}

// NewValidator accepts only the given export formats
func NewValidator(cfg config.SessionConfig, formats []entity.ResultFormat) *Validator {
	return &Validator{cfg: cfg, formats: formats}
}

// ValidateAskQuestion checks the request shape only. Short or blank questions are
// valid here: the tutor answers them with guidance instead of an error.
func (v *Validator) ValidateAskQuestion(req *entity.AskQuestionRequest) error {
	if req.Question == nil {
		return fmt.Errorf("%w: question", entity.ErrMissingField)
	}
	return nil
}

// ParseHistoryLimit parses the history window size, defaulting when raw is empty
func (v *Validator) ParseHistoryLimit(raw string) (int, error) {
	if raw == "" {
		return entity.DefaultRecentWindow, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: limit must be an integer", entity.ErrInvalidParameter)
	}

	if limit < 1 || limit > v.cfg.HistoryMaxLimit {
		return 0, fmt.Errorf("%w: limit must be between 1 and %d, got %d", entity.ErrInvalidParameter, v.cfg.HistoryMaxLimit, limit)
	}

	return limit, nil
}

// ParseExportFormat parses the export format, defaulting to PDF when raw is empty
func (v *Validator) ParseExportFormat(raw string) (entity.ResultFormat, error) {
	if raw == "" {
		return entity.FormatPDF, nil
	}

	format := entity.ResultFormat(raw)
	if !format.IsValid() || !slices.Contains(v.formats, format) {
		return "", fmt.Errorf("%w: format must be one of: %s", entity.ErrInvalidFormat, joinFormats(v.formats))
	}

	return format, nil
}

func joinFormats(formats []entity.ResultFormat) string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
