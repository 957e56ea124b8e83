package utils

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
)

func JSONError(ctx iris.Context, status int, code, message string) {
	ctx.StatusCode(status)
	ctx.JSON(iris.Map{"error": code, "message": message})
}

func CreateInternalServerError(ctx iris.Context) {
	JSONError(ctx, http.StatusInternalServerError, "server_error", "Internal server error")
}

// HandleValidationErrors turns a ReadJSON failure into a 400. Validator
// failures list the offending fields; anything else is a malformed payload.
func HandleValidationErrors(err error, ctx iris.Context) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make([]string, 0, len(validationErrs))
		for _, fe := range validationErrs {
			fields = append(fields, fe.Field())
		}
		msg := "Invalid or missing fields"
		if len(fields) > 0 {
			msg += ": "
			for i, f := range fields {
				if i > 0 {
					msg += ", "
				}
				msg += f
			}
		}
		JSONError(ctx, http.StatusBadRequest, "validation_error", msg)
		return
	}
	JSONError(ctx, http.StatusBadRequest, "invalid_payload", "Request body could not be parsed")
}
