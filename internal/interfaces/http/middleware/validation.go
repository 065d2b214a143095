package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/iletigo/mutabakat/internal/domain/reconciliation"
	"github.com/shopspring/decimal"
)

// Custom validation tags
const (
	TagReconStatus  = "reconstatus"
	TagStatusFilter = "statusfilter" // a status or "all"
	TagDecimalGT0   = "decimalgt0"
)

// ErrInvalidBody is returned when the body cannot be decoded
const ErrInvalidBody = "invalid request body"

var setupOnce sync.Once

// SetupValidator names fields after their json/form tags and registers the
// reconciliation validators on gin's validator engine. Safe to call repeatedly.
func SetupValidator() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})
		// Decimals are validated through their canonical string form
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				return d.String()
			}
			return nil
		}, decimal.Decimal{})
		_ = v.RegisterValidation(TagReconStatus, validateReconStatus)
		_ = v.RegisterValidation(TagStatusFilter, validateStatusFilter)
		_ = v.RegisterValidation(TagDecimalGT0, validateDecimalGT0)
	})
}

func validateReconStatus(fl validator.FieldLevel) bool {
	return reconciliation.Status(fl.Field().String()).IsValid()
}

func validateStatusFilter(fl validator.FieldLevel) bool {
	v := fl.Field().String()
	return v == reconciliation.FilterAll || reconciliation.Status(v).IsValid()
}

func validateDecimalGT0(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	return err == nil && d.IsPositive()
}

// ValidationMessage turns a binding error into the single message the
// client sees. The first failing field wins.
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return ErrInvalidBody
	}
	return fieldMessage(verrs[0])
}

func fieldMessage(e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "required":
		return field + " is required"
	case TagReconStatus, TagStatusFilter:
		return fmt.Sprintf("invalid status: %v", e.Value())
	case TagDecimalGT0, "gt":
		if e.Param() == "" || e.Param() == "0" {
			return field + " must be greater than 0"
		}
		return field + " must be greater than " + e.Param()
	case "oneof":
		return field + " must be one of: " + e.Param()
	case "min", "gte":
		return field + " must be at least " + e.Param()
	case "max", "lte":
		return field + " must be at most " + e.Param()
	case "email":
		return field + " must be a valid email"
	default:
		return "invalid " + field
	}
}

// HandleValidationError answers a failed bind: 413 for capped bodies,
// otherwise 400 with the first validation message.
func HandleValidationError(c *gin.Context, err error) {
	if IsBodyTooLarge(err) {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": ErrBodyTooLarge})
		return
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ValidationMessage(err)})
}
