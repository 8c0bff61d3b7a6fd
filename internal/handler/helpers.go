package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/MikeCanto/Consultorio-Nutricionista/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// validate is shared by every handler in the package.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Validation errors report the json field name, so clients see the same
	// names they sent instead of the Go struct fields.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// decimal.Decimal validates as its float value; without this the
	// validator panics on numeric tags like gt=0 over a struct type.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		d, ok := field.Interface().(decimal.Decimal)
		if !ok {
			return nil
		}
		f, _ := d.Float64()
		return f
	}, decimal.Decimal{})

	return v
}

// bindAndValidate decodes the JSON body into req and runs its validate tags.
// On failure it writes the error response and returns false; the handler must
// return without writing anything else.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	return runValidation(c, req)
}

// bindQueryAndValidate does the same for query-string filters. Filters carry
// validate tags too, so values like ?limit=0 are rejected instead of silently
// returning empty pages.
func bindQueryAndValidate(c *gin.Context, filter interface{}) bool {
	if err := c.ShouldBindQuery(filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parametros invalidos: "+err.Error()))
		return false
	}
	return runValidation(c, filter)
}

func runValidation(c *gin.Context, v interface{}) bool {
	err := validate.Struct(v)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		campos := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			campos[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(campos))
		return false
	}
	c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	return false
}
