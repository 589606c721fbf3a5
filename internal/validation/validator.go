package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/portfolio-cms/internal/derive"
	"github.com/portfolio-cms/internal/models"
)

var (
	slugRegex = regexp.MustCompile(`^[a-z0-9-]+$`)
	yearRegex = regexp.MustCompile(`^\d{4}$`)
)

// Field labels that differ from the humanized JSON name
var fieldLabels = map[string]string{
	"name": "Project name",
	"body": "Content",
}

// FieldError represents a single violated constraint
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the ordered, non-empty list of violations returned for
// malformed input.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		if fe.Field == "" {
			parts = append(parts, fe.Message)
			continue
		}
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether field appears in the list
func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// AsErrors unwraps a validation failure
func AsErrors(err error) (Errors, bool) {
	var verrs Errors
	if errors.As(err, &verrs) {
		return verrs, true
	}
	return nil, false
}

// Schema validates content submitted by the admin forms. The same rules
// run for live form feedback and for the write endpoints.
type Schema struct {
	validate *validator.Validate
}

// NewSchema creates a schema with the slug and year rules registered
func NewSchema() *Schema {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration only fails for empty tags or nil funcs
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugRegex.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("year", func(fl validator.FieldLevel) bool {
		return yearRegex.MatchString(fl.Field().String())
	})

	return &Schema{validate: v}
}

// Article decodes and validates an article body
func (s *Schema) Article(body []byte) (models.ArticleInput, error) {
	var in models.ArticleInput
	decodeErrs := decode(body, &in)
	if len(decodeErrs) > 0 && decodeErrs[0].Field == "" {
		return in, decodeErrs
	}
	return in, merge(decodeErrs, s.ValidateArticle(&in))
}

// Project decodes and validates a project body
func (s *Schema) Project(body []byte) (models.ProjectInput, error) {
	var in models.ProjectInput
	decodeErrs := decode(body, &in)
	if len(decodeErrs) > 0 && decodeErrs[0].Field == "" {
		return in, decodeErrs
	}
	return in, merge(decodeErrs, s.ValidateProject(&in))
}

// ValidateArticle applies defaults to in and checks every constraint
func (s *Schema) ValidateArticle(in *models.ArticleInput) error {
	if in.ReadTime == "" && in.Content != "" {
		in.ReadTime = derive.EstimateReadTime(in.Content)
	}
	return s.check(in)
}

// ValidateProject applies defaults to in and checks every constraint
func (s *Schema) ValidateProject(in *models.ProjectInput) error {
	in.Tags = normalizeTags(in.Tags)
	if in.TechStack == nil {
		in.TechStack = []string{}
	}
	if in.Execution.Images == nil {
		in.Execution.Images = []models.ProjectImage{}
	}
	if in.Outcome.Metrics == nil {
		in.Outcome.Metrics = []models.ProjectMetric{}
	}
	return s.check(in)
}

// Login decodes and validates admin credentials
func (s *Schema) Login(body []byte) (models.LoginRequest, error) {
	var req models.LoginRequest
	decodeErrs := decode(body, &req)
	if len(decodeErrs) > 0 && decodeErrs[0].Field == "" {
		return req, decodeErrs
	}
	req.Email = strings.TrimSpace(req.Email)
	return req, merge(decodeErrs, s.check(&req))
}

// Contact decodes and validates a contact form submission
func (s *Schema) Contact(body []byte) (models.ContactMessage, error) {
	var msg models.ContactMessage
	decodeErrs := decode(body, &msg)
	if len(decodeErrs) > 0 && decodeErrs[0].Field == "" {
		return msg, decodeErrs
	}
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Message = strings.TrimSpace(msg.Message)
	return msg, merge(decodeErrs, s.check(&msg))
}

func (s *Schema) check(v interface{}) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Errors{{Message: err.Error()}}
	}

	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fieldPath(fe.Namespace()),
			Message: message(fe),
		})
	}
	return out
}

var unmarshalerType = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()

// decode reads a JSON object into dst one field at a time. A body that is
// not a JSON object is reported without a field; every type mismatch is
// reported against its own path, in the same "a.b[0].c" form the struct
// validator uses, and the rest of the document is still decoded.
func decode(body []byte, dst interface{}) Errors {
	notObject := Errors{{Message: "Request body must be a JSON object"}}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return notObject
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return notObject
	}

	var errs Errors
	decodeObject(fields, reflect.ValueOf(dst).Elem(), "", &errs)
	return errs
}

func decodeObject(fields map[string]json.RawMessage, v reflect.Value, path string, errs *Errors) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		name := strings.SplitN(sf.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			continue
		}
		if name == "" && sf.Anonymous && sf.Type.Kind() == reflect.Struct {
			decodeObject(fields, v.Field(i), path, errs)
			continue
		}
		if name == "" {
			name = sf.Name
		}

		raw, ok := lookupField(fields, name)
		if !ok {
			continue
		}
		decodeValue(raw, v.Field(i), joinPath(path, name), errs)
	}
}

func decodeValue(raw json.RawMessage, v reflect.Value, path string, errs *Errors) {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return
	}
	mismatch := func() {
		*errs = append(*errs, FieldError{Field: path, Message: "Expected " + kindName(v.Type())})
	}

	if reflect.PointerTo(v.Type()).Implements(unmarshalerType) {
		if err := json.Unmarshal(raw, v.Addr().Interface()); err != nil {
			mismatch()
		}
		return
	}

	switch v.Kind() {
	case reflect.Struct:
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			mismatch()
			return
		}
		decodeObject(fields, v, path, errs)
	case reflect.Slice:
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			mismatch()
			return
		}
		out := reflect.MakeSlice(v.Type(), len(items), len(items))
		for i, item := range items {
			decodeValue(item, out.Index(i), fmt.Sprintf("%s[%d]", path, i), errs)
		}
		v.Set(out)
	default:
		if err := json.Unmarshal(raw, v.Addr().Interface()); err != nil {
			mismatch()
		}
	}
}

// lookupField matches a JSON key the way encoding/json does: exact first,
// then case-insensitively.
func lookupField(fields map[string]json.RawMessage, name string) (json.RawMessage, bool) {
	if raw, ok := fields[name]; ok {
		return raw, true
	}
	for key, raw := range fields {
		if strings.EqualFold(key, name) {
			return raw, true
		}
	}
	return nil, false
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

// merge appends validator errors to decode errors, skipping fields that
// already failed to decode and anything nested under them.
func merge(decodeErrs Errors, err error) error {
	checkErrs, _ := AsErrors(err)
	if len(decodeErrs) == 0 && len(checkErrs) == 0 {
		return nil
	}

	out := append(Errors{}, decodeErrs...)
	for _, fe := range checkErrs {
		if decodeErrs.covers(fe.Field) {
			continue
		}
		out = append(out, fe)
	}
	return out
}

// covers reports whether field, or an object or array containing it,
// appears in the list
func (e Errors) covers(field string) bool {
	for _, fe := range e {
		if fe.Field == "" {
			continue
		}
		if field == fe.Field || strings.HasPrefix(field, fe.Field+".") || strings.HasPrefix(field, fe.Field+"[") {
			return true
		}
	}
	return false
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.ToUpper(strings.TrimSpace(tag))
		if tag != "" && seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

// fieldPath drops the root struct name: "ProjectInput.outcome.metrics[0].label"
// becomes "outcome.metrics[0].label".
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		if strings.HasSuffix(fe.Field(), "]") {
			return "Must not be empty"
		}
		return label(fe.Field()) + " is required"
	case "min":
		return fmt.Sprintf("At least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("Max %s characters", fe.Param())
	case "url":
		return "Must be a valid URL"
	case "email":
		return "Invalid email address"
	case "slug":
		return "Slug must be lowercase letters, numbers, and hyphens only"
	case "year":
		return "Must be a 4-digit year"
	default:
		return fmt.Sprintf("Failed %s validation", fe.Tag())
	}
}

// label turns a camelCase JSON name into a sentence-case label
func label(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}

	var b strings.Builder
	for i, r := range field {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteRune(' ')
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func kindName(t reflect.Type) string {
	if t == nil {
		return "a different type"
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Struct, reflect.Map:
		return "object"
	case reflect.Int, reflect.Int64, reflect.Float64:
		return "number"
	default:
		return t.String()
	}
}
