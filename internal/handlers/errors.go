// internal/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/school-sales-backend/internal/i18n"
	"github.com/javajoker/school-sales-backend/internal/services"
	"github.com/javajoker/school-sales-backend/internal/utils"
)

var notFoundKeys = map[string]string{
	"order":      i18n.KeyOrderNotFound,
	"order item": i18n.KeyOrderItemNotFound,
	"product":    i18n.KeyProductNotFound,
	"team":       i18n.KeyTeamNotFound,
	"classroom":  i18n.KeyClassroomNotFound,
}

// respondError maps a service error onto the response envelope. saved is the
// record a write committed before its team recalculation failed, if any.
func respondError(c *gin.Context, err error, saved interface{}) {
	lang := utils.GetLangFromContext(c)
	var notFound *services.NotFoundError

	switch {
	case errors.Is(err, services.ErrValidation):
		utils.BadRequestResponse(c, strings.TrimPrefix(err.Error(), services.ErrValidation.Error()+": "), nil)
	case errors.As(err, &notFound):
		key, ok := notFoundKeys[notFound.Resource]
		if !ok {
			utils.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", notFound.Error(), nil)
			return
		}
		utils.NotFoundResponse(c, key)
	case errors.Is(err, services.ErrReference):
		utils.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case errors.Is(err, services.ErrConflict):
		utils.ConflictResponse(c, strings.TrimPrefix(err.Error(), services.ErrConflict.Error()+": "))
	case errors.Is(err, services.ErrRecalculation):
		logrus.WithError(err).WithField("request_id", c.GetString("request_id")).Error("Write committed but team sales are stale")
		utils.ErrorResponse(c, http.StatusInternalServerError, "RECALCULATION_FAILED",
			i18n.T(lang, i18n.KeySalesRecalculationFailed), saved)
	default:
		logrus.WithError(err).WithField("request_id", c.GetString("request_id")).Error("Request failed")
		utils.InternalErrorResponse(c, "")
	}
}

func parseID(c *gin.Context, param, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyInvalidID, resource), nil)
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON decodes and validates the request body, writing the 400 response
// itself on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	lang := utils.GetLangFromContext(c)
	if err := c.ShouldBindJSON(req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return false
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return false
	}
	return true
}
