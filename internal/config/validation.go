package config

import (
	"errors"
	"fmt"
	"path"
	"reflect"
	"regexp"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Dynamic token patterns that must not appear in manifest paths.
var dynamicTokenPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$\{[^}]+\}`),   // ${VAR}
	regexp.MustCompile(`\{\{[^}]+\}\}`), // {{VAR}}
}

// newValidator returns a validator that reports fields by their YAML names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the manifest for correctness. Struct tags are checked
// first; cross-field rules follow. When known is non-empty every template
// reference must be one of its names.
func Validate(m *Manifest, known []string) error {
	var errs []ValidationError

	if err := newValidator().Struct(m); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("validate manifest: %w", err)
		}
		for _, fe := range fieldErrs {
			errs = append(errs, ValidationError{
				Field:   trimRoot(fe.Namespace()),
				Message: tagMessage(fe),
				Value:   valueOrNil(fe.Value()),
				Wrapped: ErrInvalidManifest,
			})
		}
	}

	errs = append(errs, validateKinds(m.ModelFiles)...)
	errs = append(errs, validatePaths(m)...)
	if len(known) > 0 {
		errs = append(errs, validateTemplates(m, known)...)
	}

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}

// validateKinds checks that kinds are unique and every requires entry names a declared kind.
func validateKinds(specs []ModelFileSpec) []ValidationError {
	var errs []ValidationError
	declared := make(map[string]bool, len(specs))
	for i, s := range specs {
		if s.Kind == "" {
			continue
		}
		if declared[s.Kind] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("model_files[%d].kind", i),
				Message: "duplicate kind",
				Value:   s.Kind,
				Wrapped: ErrInvalidManifest,
			})
		}
		declared[s.Kind] = true
	}
	for i, s := range specs {
		for _, req := range s.Requires {
			if !declared[req] {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("model_files[%d].requires", i),
					Message: "references undeclared kind",
					Value:   req,
					Wrapped: ErrUnknownKind,
				})
			}
		}
	}
	return errs
}

// validatePaths rejects absolute paths, paths escaping the project root and
// unexpanded tokens.
func validatePaths(m *Manifest) []ValidationError {
	var errs []ValidationError
	check := func(field, p string) {
		if p == "" {
			return
		}
		for _, pattern := range dynamicTokenPatterns {
			if match := pattern.FindString(p); match != "" {
				errs = append(errs, ValidationError{
					Field:   field,
					Message: fmt.Sprintf("contains unexpanded dynamic token: %s", match),
					Value:   p,
					Wrapped: ErrInvalidManifest,
				})
				return
			}
		}
		if !isLocalPath(p) {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: "must be a relative path inside the project",
				Value:   p,
				Wrapped: ErrUnsafePath,
			})
		}
	}

	for i, f := range m.Folders {
		check(fmt.Sprintf("folders[%d].name", i), f.Name)
	}
	for i, s := range m.ModelFiles {
		check(fmt.Sprintf("model_files[%d].folder", i), s.Folder)
		if strings.ContainsAny(s.Suffix, `/\`) {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("model_files[%d].suffix", i),
				Message: "must not contain a path separator",
				Value:   s.Suffix,
				Wrapped: ErrUnsafePath,
			})
		}
	}
	for i, f := range m.SharedFiles {
		check(fmt.Sprintf("shared_files[%d].path", i), f.Path)
	}
	check("utilities.folder", m.Utilities.Folder)
	for i, f := range m.Utilities.Files {
		check(fmt.Sprintf("utilities.files[%d].path", i), f.Path)
	}
	check("entry.path", m.Entry.Path)
	check("env.path", m.Env.Path)
	check("gitignore.path", m.Gitignore.Path)
	return errs
}

// validateTemplates checks every template reference against the known names.
func validateTemplates(m *Manifest, known []string) []ValidationError {
	var errs []ValidationError
	check := func(field, name string) {
		if name != "" && !slices.Contains(known, name) {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: "unknown template",
				Value:   name,
				Wrapped: ErrUnknownTemplate,
			})
		}
	}
	for i, s := range m.ModelFiles {
		check(fmt.Sprintf("model_files[%d].template", i), s.Template)
	}
	for i, f := range m.SharedFiles {
		check(fmt.Sprintf("shared_files[%d].template", i), f.Template)
	}
	for i, f := range m.Utilities.Files {
		check(fmt.Sprintf("utilities.files[%d].template", i), f.Template)
	}
	check("entry.template", m.Entry.Template)
	check("env.template", m.Env.Template)
	check("gitignore.template", m.Gitignore.Template)
	return errs
}

// isLocalPath reports whether p is a slash-separated relative path that
// stays inside the project root.
func isLocalPath(p string) bool {
	if strings.Contains(p, `\`) || path.IsAbs(p) {
		return false
	}
	clean := path.Clean(p)
	return clean != ".." && !strings.HasPrefix(clean, "../")
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must have at least %s item(s)", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	}
	return fmt.Sprintf("failed %q check", fe.Tag())
}

// trimRoot drops the leading "Manifest." from a validator namespace.
func trimRoot(ns string) string {
	_, rest, found := strings.Cut(ns, ".")
	if !found {
		return ns
	}
	return rest
}

func valueOrNil(v any) any {
	if s, ok := v.(string); ok && s == "" {
		return nil
	}
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	if (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Map) && rv.Len() == 0 {
		return nil
	}
	return v
}
