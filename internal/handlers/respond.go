package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sway-pr/internal/models"
	"sway-pr/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func statusForKind(kind models.ErrorKind) int {
	switch kind {
	case models.KindMalformedInput, models.KindInvalidTarget, models.KindMissingField,
		models.KindEmptyMapping, models.KindInvalidFileType:
		return http.StatusBadRequest
	case models.KindNotFound:
		return http.StatusNotFound
	case models.KindDuplicateKey:
		return http.StatusConflict
	case models.KindUnauthorized:
		return http.StatusUnauthorized
	case models.KindUpstreamFailure:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// respondError writes {"error": ...} with the status of the error's kind.
// Storage failures are logged and answered with a generic message.
func (h *HTTPHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Kind == models.KindStorageFailure {
		utils.LogError("%s %s: %v", r.Method, r.URL.Path, err)
		models.RespondWithError(w, http.StatusInternalServerError, "an internal error occurred")
		return
	}

	status := statusForKind(appErr.Kind)
	if status >= http.StatusInternalServerError {
		utils.LogError("%s %s: %v", r.Method, r.URL.Path, err)
	}
	models.RespondWithError(w, status, appErr.Message)
}

// decodeJSON decodes the body into dst and runs struct validation.
func (h *HTTPHandler) decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return models.WrapError(models.KindMalformedInput, err, "invalid JSON body")
	}
	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			if fe.Tag() == "required" {
				return models.NewError(models.KindMissingField, "%s is required", fe.Field())
			}
			return models.NewError(models.KindMalformedInput, "%s is invalid", fe.Field())
		}
		return models.WrapError(models.KindMalformedInput, err, "invalid request")
	}
	return nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, models.NewError(models.KindMalformedInput, "invalid id")
	}
	return id, nil
}

func queryUploadID(r *http.Request) (*int64, error) {
	id, ok := utils.ParseOptionalID(r.URL.Query().Get("upload_id"))
	if !ok {
		return nil, models.NewError(models.KindMalformedInput, "upload_id must be a positive integer")
	}
	return id, nil
}
