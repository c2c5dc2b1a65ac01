package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		expected string
	}{
		{
			name: "error with wrapped error",
			appError: &AppError{
				Type:    ErrorTypeInput,
				Message: "failed to read input",
				Err:     errors.New("file not found"),
			},
			expected: "input: failed to read input: file not found",
		},
		{
			name: "error without wrapped error",
			appError: &AppError{
				Type:    ErrorTypeParsing,
				Message: "invalid YAML syntax",
				Err:     nil,
			},
			expected: "parsing: invalid YAML syntax",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.appError.Error()
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	wrappedErr := errors.New("wrapped error")
	appErr := &AppError{
		Type:    ErrorTypeInput,
		Message: "test message",
		Err:     wrappedErr,
	}

	result := appErr.Unwrap()
	assert.Equal(t, wrappedErr, result)
}

func TestAppError_Is(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		target   error
		expected bool
	}{
		{
			name: "same type",
			appError: &AppError{
				Type:    ErrorTypeInput,
				Message: "test message",
				Err:     nil,
			},
			target: &AppError{
				Type:    ErrorTypeInput,
				Message: "different message",
				Err:     errors.New("some error"),
			},
			expected: true,
		},
		{
			name: "different type",
			appError: &AppError{
				Type:    ErrorTypeInput,
				Message: "test message",
				Err:     nil,
			},
			target: &AppError{
				Type:    ErrorTypeParsing,
				Message: "test message",
				Err:     nil,
			},
			expected: false,
		},
		{
			name: "not an AppError",
			appError: &AppError{
				Type:    ErrorTypeInput,
				Message: "test message",
				Err:     nil,
			},
			target:   errors.New("standard error"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.appError.Is(tt.target)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestUserFriendlyError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "input error",
			err:      NewInputError("failed to read file", nil),
			expected: "Input error: failed to read file",
		},
		{
			name:     "parsing error",
			err:      NewParsingError("invalid YAML syntax", nil),
			expected: "Metric parsing error: invalid YAML syntax",
		},
		{
			name:     "unit error",
			err:      NewUnitError("cannot infer unit for 'disk'", nil),
			expected: "Unit error: cannot infer unit for 'disk'",
		},
		{
			name:     "convert error",
			err:      NewConvertError("failed to convert 'disk'", nil),
			expected: "Conversion error: failed to convert 'disk'",
		},
		{
			name:     "format error",
			err:      NewFormatError("failed to indent output", nil),
			expected: "JSON formatting error: failed to indent output",
		},
		{
			name:     "output error",
			err:      NewOutputError("failed to write output", nil),
			expected: "Output error: failed to write output",
		},
		{
			name:     "standard error - empty input",
			err:      ErrEmptyInput,
			expected: "Error: The input is empty. Please provide metric definitions.",
		},
		{
			name:     "standard error - invalid input",
			err:      ErrInvalidInput,
			expected: "Error: The input is not valid YAML or JSON. Please check the syntax.",
		},
		{
			name:     "standard error - wrapped unknown unit",
			err:      fmt.Errorf("metric 'disk': %w", ErrUnknownUnit),
			expected: "Error: Unknown unit. Run with --list-units to see the supported units.",
		},
		{
			name:     "unknown error",
			err:      errors.New("some unknown error"),
			expected: "Error: some unknown error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := UserFriendlyError(tt.err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestAppError_IsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("building document: %w", NewConvertError("failed to convert 'disk'", ErrUnknownUnit))

	assert.True(t, errors.Is(err, &AppError{Type: ErrorTypeConvert}))
	assert.False(t, errors.Is(err, &AppError{Type: ErrorTypeInput}))
	assert.True(t, errors.Is(err, ErrUnknownUnit))
}
