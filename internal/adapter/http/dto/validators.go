package dto

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"regexp"
	"strings"

	"church-cms/pkg/sanitize"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var hhmmRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		Register(v)
	}
}

// Register installs the custom validators, the decimal type mapping and JSON
// field naming on v.
func Register(v *validator.Validate) {
	_ = v.RegisterValidation("safe_url", validateSafeURL)
	_ = v.RegisterValidation("hhmm", validateHHMM)
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	v.RegisterTagNameFunc(jsonFieldName)
}

// validateSafeURL accepts only http/https URLs.
func validateSafeURL(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if raw == "" {
		return true // optional field; use "required" tag to enforce presence
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func validateHHMM(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	return raw == "" || hhmmRe.MatchString(raw)
}

// decimalValue lets numeric tags (gt, gte, max) apply to decimal.Decimal.
func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// Bind decodes a JSON body into obj, trims its strings, validates it with
// the gin validator and then applies SanitizeStruct. Length rules therefore
// see the trimmed input, not the escaped output.
func Bind(r *http.Request, obj interface{}) error {
	if r.Body == nil {
		return io.EOF
	}
	if err := json.NewDecoder(r.Body).Decode(obj); err != nil {
		return err
	}
	trimStruct(obj)
	if err := binding.Validator.ValidateStruct(obj); err != nil {
		return err
	}
	SanitizeStruct(obj)
	return nil
}

// SanitizeStruct cleans every exported string field (including *string) of
// a struct pointer according to its `sanitize` tag:
//
//	(none)  trim and HTML-escape
//	html    keep the rich-text allowlist
//	text    strip all tags
//	lower   trim and lower-case
//	trim    trim only
func SanitizeStruct(v interface{}) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return
	}
	sanitizeFields(rv.Elem())
}

func trimStruct(v interface{}) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return
	}
	walkStrings(rv.Elem(), func(s, _ string) string { return strings.TrimSpace(s) })
}

func sanitizeFields(rv reflect.Value) {
	walkStrings(rv, clean)
}

func walkStrings(rv reflect.Value, fn func(s, mode string) string) {
	rt := rv.Type()
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanSet() {
			continue
		}
		mode := rt.Field(i).Tag.Get("sanitize")
		switch f.Kind() {
		case reflect.String:
			f.SetString(fn(f.String(), mode))
		case reflect.Ptr:
			if f.IsNil() {
				continue
			}
			elem := f.Elem()
			if elem.Kind() == reflect.String {
				elem.SetString(fn(elem.String(), mode))
			}
		}
	}
}

func clean(s, mode string) string {
	switch mode {
	case "html":
		return sanitize.HTML(s)
	case "text":
		return sanitize.Text(s)
	case "lower":
		return strings.ToLower(strings.TrimSpace(s))
	case "trim":
		return strings.TrimSpace(s)
	default:
		return sanitize.Escape(s)
	}
}
