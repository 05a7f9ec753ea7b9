package validation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-board/internal/domain"
	apperrors "github.com/spec-kit/job-board/pkg/util/errorutil"
)

// Source names where a rule reads its field from.
type Source int

const (
	SourceBody Source = iota
	SourcePath
	SourceQuery
)

// Rule is a single field predicate expressed as a validator tag.
type Rule struct {
	Field    string
	Source   Source
	Tag      string
	Message  string
	Optional bool
}

// Body declares a rule on a request body field (JSON, urlencoded or multipart).
func Body(field, tag, message string) Rule {
	return Rule{Field: field, Source: SourceBody, Tag: tag, Message: message}
}

// Path declares a rule on a route parameter.
func Path(field, tag, message string) Rule {
	return Rule{Field: field, Source: SourcePath, Tag: tag, Message: message}
}

// Query declares a rule on a query string parameter.
func Query(field, tag, message string) Rule {
	return Rule{Field: field, Source: SourceQuery, Tag: tag, Message: message}
}

// IfPresent makes the rule apply only when the field was sent.
func (r Rule) IfPresent() Rule {
	r.Optional = true
	return r
}

// RuleSet is evaluated in declaration order; every rule runs even after a failure.
type RuleSet []Rule

// Validator evaluates rule sets against fiber requests.
type Validator struct {
	validate *validator.Validate
}

// New returns a Validator with the domain enum tags registered:
// role, employment_type, job_status, application_status.
func New() *Validator {
	v := validator.New()
	mustRegister(v, "role", func(s string) bool { _, err := domain.ParseRole(s); return err == nil })
	mustRegister(v, "employment_type", func(s string) bool { _, err := domain.ParseEmploymentType(s); return err == nil })
	mustRegister(v, "job_status", func(s string) bool { _, err := domain.ParseJobStatus(s); return err == nil })
	mustRegister(v, "application_status", func(s string) bool { _, err := domain.ParseApplicationStatus(s); return err == nil })
	return &Validator{validate: v}
}

func mustRegister(v *validator.Validate, tag string, ok func(string) bool) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return ok(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// Stage adapts a rule set into a gate stage.
func (v *Validator) Stage(rules RuleSet) func(*fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		return v.Check(c, rules)
	}
}

// Check evaluates all rules and returns a ValidationFailed error joining every violation
// message with ", ", or nil when the request satisfies the set.
func (v *Validator) Check(c *fiber.Ctx, rules RuleSet) error {
	if len(rules) == 0 {
		return nil
	}
	in := newRequestFields(c)

	violations := make([]string, 0, len(rules))
	for _, rule := range rules {
		value, present := in.lookup(rule)
		if rule.Optional && !present {
			continue
		}
		if err := v.validate.Var(value, rule.Tag); err != nil {
			violations = append(violations, rule.message())
		}
	}
	if len(violations) == 0 {
		return nil
	}
	return apperrors.NewValidationError(strings.Join(violations, ", "), map[string]any{"errors": violations})
}

func (r Rule) message() string {
	if r.Message != "" {
		return r.Message
	}
	return fmt.Sprintf("%s is invalid", r.Field)
}

// requestFields reads body fields lazily, once per request.
type requestFields struct {
	c      *fiber.Ctx
	parsed bool
	body   map[string]string
}

func newRequestFields(c *fiber.Ctx) *requestFields {
	return &requestFields{c: c}
}

func (f *requestFields) lookup(rule Rule) (string, bool) {
	switch rule.Source {
	case SourcePath:
		val := f.c.Params(rule.Field)
		return val, val != ""
	case SourceQuery:
		if !f.c.Context().QueryArgs().Has(rule.Field) {
			return "", false
		}
		return f.c.Query(rule.Field), true
	default:
		if !f.parsed {
			f.body = readBody(f.c)
			f.parsed = true
		}
		val, ok := f.body[rule.Field]
		return val, ok
	}
}

// readBody flattens the request body into string values. Arrays are comma joined so that a
// "required" rule fails on an empty list the same way it fails on an empty string.
func readBody(c *fiber.Ctx) map[string]string {
	out := map[string]string{}

	switch {
	case c.Is("json"):
		raw := map[string]any{}
		if err := json.Unmarshal(c.Body(), &raw); err != nil {
			return out
		}
		for key, val := range raw {
			out[key] = flatten(val)
		}
	case strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm):
		form, err := c.MultipartForm()
		if err != nil {
			return out
		}
		for key, vals := range form.Value {
			out[key] = strings.Join(vals, ",")
		}
	default:
		c.Request().PostArgs().VisitAll(func(key, val []byte) {
			k := string(key)
			if prev, ok := out[k]; ok {
				out[k] = prev + "," + string(val)
				return
			}
			out[k] = string(val)
		})
	}
	return out
}

func flatten(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if s := flatten(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(v)
	}
}
