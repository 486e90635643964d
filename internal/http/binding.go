package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"productapi/internal/domain"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// priceLimit is the smallest price with too many integer digits.
var priceLimit = decimal.New(1, domain.PriceMaxIntegerDigits)

// jsonPrice accepts a JSON number or a numeric string. Anything else is
// reported as a type error on the price field.
type jsonPrice struct {
	decimal.Decimal
}

func (p *jsonPrice) UnmarshalJSON(b []byte) error {
	if err := p.Decimal.UnmarshalJSON(b); err != nil {
		return &json.UnmarshalTypeError{Value: string(b), Type: reflect.TypeOf(float64(0))}
	}
	return nil
}

// productRequest is the wire shape accepted by create and update.
type productRequest struct {
	Name        string     `json:"name" binding:"required,min=3,max=100" example:"Laptop"`
	Description string     `json:"description" binding:"max=1000" example:"14 inch, 16 GB RAM"`
	Price       *jsonPrice `json:"price" binding:"required,gte=0" swaggertype:"number" example:"1299.99"`
	Quantity    *int       `json:"quantity" binding:"required,gte=0" example:"5"`
}

func (r productRequest) toDomain(id int64) domain.Product {
	p := domain.Product{ID: id, Name: r.Name, Description: r.Description}
	if r.Price != nil {
		p.Price = r.Price.Decimal
	}
	if r.Quantity != nil {
		p.Quantity = *r.Quantity
	}
	return p
}

// validateProductRequest limits the price to what the price column stores.
func validateProductRequest(sl validator.StructLevel) {
	req, ok := sl.Current().Interface().(productRequest)
	if !ok || req.Price == nil {
		return
	}
	d := req.Price.Decimal
	if !d.Equal(d.Round(domain.PriceScale)) {
		sl.ReportError(req.Price, "price", "Price", "scale", strconv.Itoa(domain.PriceScale))
	}
	if d.Abs().GreaterThanOrEqual(priceLimit) {
		sl.ReportError(req.Price, "price", "Price", "digits", strconv.Itoa(domain.PriceMaxIntegerDigits))
	}
}

var registerOnce sync.Once

// registerValidators reports field errors by JSON name and lets the
// numeric tags apply to decimals.
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			switch d := field.Interface().(type) {
			case decimal.Decimal:
				f, _ := d.Float64()
				return f
			case jsonPrice:
				f, _ := d.Float64()
				return f
			}
			return nil
		}, decimal.Decimal{}, jsonPrice{})
		v.RegisterStructValidation(validateProductRequest, productRequest{})
	})
}

// bindError converts a gin binding failure into a RequestValidationError.
func bindError(err error) error {
	var ves validator.ValidationErrors
	if errors.As(err, &ves) {
		fields := make(map[string]string, len(ves))
		for _, fe := range ves {
			if _, seen := fields[fe.Field()]; !seen {
				fields[fe.Field()] = reason(fe)
			}
		}
		return &RequestValidationError{Fields: fields}
	}
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) && ute.Field != "" {
		return fieldError(ute.Field, "must be "+typeName(ute.Type))
	}
	if errors.Is(err, io.EOF) {
		return fieldError("body", "is required")
	}
	return fieldError("body", "malformed JSON")
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "a valid value"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	default:
		return "a valid value"
	}
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "scale":
		return fmt.Sprintf("must have at most %s decimal places", fe.Param())
	case "digits":
		return fmt.Sprintf("must have at most %s integer digits", fe.Param())
	default:
		return "is invalid"
	}
}
