package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryMissingAnchor, "no closing </head> tag").
			WithSeverity(SeverityFatal).
			WithContext("path", "index.html").
			Build()

		if err.Category() != CategoryMissingAnchor {
			t.Errorf("expected category %s, got %s", CategoryMissingAnchor, err.Category())
		}
		if err.Severity() != SeverityFatal {
			t.Errorf("expected severity %s, got %s", SeverityFatal, err.Severity())
		}
		if err.Message() != "no closing </head> tag" {
			t.Errorf("unexpected message %q", err.Message())
		}

		path, exists := err.Context().GetString("path")
		if !exists || path != "index.html" {
			t.Errorf("expected context path=index.html, got %v", path)
		}
	})

	t.Run("Error detection through wrapping", func(t *testing.T) {
		err := fmt.Errorf("stage failed: %w", MalformedData("graph has no ops list").Build())

		if !IsClassified(err) {
			t.Error("expected wrapped error to be classified")
		}
		if !HasCategory(err, CategoryMalformedData) {
			t.Error("expected error to have malformed_data category")
		}
		if GetCategory(errors.New("plain")) != CategoryInternal {
			t.Error("expected unclassified error to report internal category")
		}
	})

	t.Run("WithContext returns a copy", func(t *testing.T) {
		base := FileSystemError("write failed").Build()
		withPath := base.WithContext("path", "a.css")

		if _, ok := base.Context().GetString("path"); ok {
			t.Error("expected original error context to stay untouched")
		}
		if p, _ := withPath.Context().GetString("path"); p != "a.css" {
			t.Errorf("expected path a.css, got %q", p)
		}
	})
}

func TestErrorBuilder(t *testing.T) {
	t.Run("Fluent API", func(t *testing.T) {
		originalErr := errors.New("permission denied")
		err := WrapError(originalErr, CategoryFileSystem, "copy failed").
			WithSeverity(SeverityWarning).
			WithContext("source", "index.html").
			Build()

		if err.Severity() != SeverityWarning {
			t.Errorf("expected severity %s, got %s", SeverityWarning, err.Severity())
		}
		if !errors.Is(err, originalErr) {
			t.Error("expected error to wrap original error")
		}
		if err.Cause() != originalErr {
			t.Error("expected Cause to return the wrapped error")
		}
	})

	t.Run("Convenience constructors", func(t *testing.T) {
		tests := []struct {
			name     string
			builder  *ErrorBuilder
			category ErrorCategory
			severity ErrorSeverity
		}{
			{"MissingInput", MissingInput("test"), CategoryMissingInput, SeverityError},
			{"MalformedData", MalformedData("test"), CategoryMalformedData, SeverityError},
			{"MissingAnchor", MissingAnchor("test"), CategoryMissingAnchor, SeverityError},
			{"NoMatch", NoMatch("test"), CategoryNoMatch, SeverityError},
			{"FileSystemError", FileSystemError("test"), CategoryFileSystem, SeverityError},
			{"ConfigError", ConfigError("test"), CategoryConfig, SeverityFatal},
			{"ValidationError", ValidationError("test"), CategoryValidation, SeverityFatal},
			{"InternalError", InternalError("test"), CategoryInternal, SeverityFatal},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := tt.builder.Build()
				if err.Category() != tt.category {
					t.Errorf("expected category %s, got %s", tt.category, err.Category())
				}
				if err.Severity() != tt.severity {
					t.Errorf("expected severity %s, got %s", tt.severity, err.Severity())
				}
			})
		}
	})

	t.Run("Is compares category and message", func(t *testing.T) {
		a := NoMatch("nothing to update").Build()
		b := NoMatch("nothing to update").WithContext("path", "ops.js").Build()
		if !errors.Is(b, a) {
			t.Error("expected errors with same category and message to match")
		}
		if errors.Is(MissingInput("nothing to update").Build(), a) {
			t.Error("expected different categories not to match")
		}
	})
}

func TestErrorContext(t *testing.T) {
	t.Run("Context merge", func(t *testing.T) {
		ctx1 := make(ErrorContext)
		ctx1 = ctx1.Set("key1", "value1")
		ctx1 = ctx1.Set("shared", "original")

		ctx2 := make(ErrorContext)
		ctx2 = ctx2.Set("key2", "value2")
		ctx2 = ctx2.Set("shared", "overridden")

		merged := ctx1.Merge(ctx2)

		value1, _ := merged.GetString("key1")
		value2, _ := merged.GetString("key2")
		shared, _ := merged.GetString("shared")

		if value1 != "value1" {
			t.Errorf("expected key1=value1, got %s", value1)
		}
		if value2 != "value2" {
			t.Errorf("expected key2=value2, got %s", value2)
		}
		if shared != "overridden" {
			t.Errorf("expected shared=overridden, got %s", shared)
		}
	})

	t.Run("Nil context", func(t *testing.T) {
		var ctx ErrorContext
		if _, ok := ctx.Get("missing"); ok {
			t.Error("expected nil context lookup to miss")
		}
		ctx = ctx.Set("k", 1)
		if v, _ := ctx.Get("k"); v != 1 {
			t.Errorf("expected k=1, got %v", v)
		}
	})
}
