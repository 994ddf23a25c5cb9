package rest

import (
	"net/http"
	"reflect"
	"strings"

	"sheenclassics/internal/product"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	validatorv10 "github.com/go-playground/validator/v10"
)

// NewValidator returns a validator that also knows the catalogue enums.
func NewValidator() *validatorv10.Validate {
	v := validatorv10.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		tag := fld.Tag.Get("json")
		if tag == "" {
			tag = fld.Tag.Get("form")
		}
		name := strings.SplitN(tag, ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("category", func(fl validatorv10.FieldLevel) bool {
		return product.Category(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("size", func(fl validatorv10.FieldLevel) bool {
		return product.Size(fl.Field().String()).Valid()
	})

	return v
}

// bindAndValidate binds the JSON body into out and validates it. On failure
// it writes a 400 and returns false.
func bindAndValidate(c *gin.Context, out any, v *validatorv10.Validate) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return false
	}

	if err := v.Struct(out); err != nil {
		fields := validationErrorsToMap(err)
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Validation failed",
			"fields":  fields,
		})
		return false
	}
	return true
}

// bindQuery binds the query string into out and validates it. On failure it
// writes a 400 and returns false.
func bindQuery(c *gin.Context, out any, v *validatorv10.Validate) bool {
	if err := c.ShouldBindQuery(out); err != nil {
		fail(c, http.StatusBadRequest, "Invalid query parameters")
		return false
	}

	if err := v.Struct(out); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Validation failed",
			"fields":  validationErrorsToMap(err),
		})
		return false
	}
	return true
}

func validationErrorsToMap(err error) map[string]string {
	out := map[string]string{}
	var ve validatorv10.ValidationErrors
	if !errors.As(err, &ve) {
		out["error"] = err.Error()
		return out
	}

	for _, fe := range ve {
		field := fe.Field()
		if ns := fe.Namespace(); strings.Contains(ns, ".") {
			field = ns[strings.Index(ns, ".")+1:]
		}
		out[field] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validatorv10.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "uuid":
		return "must be a valid id"
	case "oneof":
		return "must be one of " + fe.Param()
	case "category":
		return "must be one of Men, Women, Kids, Accessories"
	case "size":
		return "must be one of XS, S, M, L, XL, XXL"
	}
	return "is invalid"
}
