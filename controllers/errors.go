package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/delight-cuisine/services"
	"github.com/yeremiapane/delight-cuisine/utils"
)

var statusByKind = map[services.ErrorKind]int{
	services.KindValidation:       http.StatusBadRequest,
	services.KindInvalidQuantity:  http.StatusBadRequest,
	services.KindEmptyOrder:       http.StatusBadRequest,
	services.KindInvalidStatus:    http.StatusBadRequest,
	services.KindItemUnavailable:  http.StatusBadRequest,
	services.KindCannotCancel:     http.StatusBadRequest,
	services.KindNotFound:         http.StatusNotFound,
	services.KindItemNotFound:     http.StatusNotFound,
	services.KindUnauthorized:     http.StatusForbidden,
	services.KindForbidden:        http.StatusForbidden,
	services.KindRestaurantClosed: http.StatusConflict,
	services.KindStorage:          http.StatusInternalServerError,
}

// respondServiceError answers with the status code matching the error kind.
func respondServiceError(c *gin.Context, err error) {
	kind := services.KindOf(err)
	code, ok := statusByKind[kind]
	if !ok {
		code = http.StatusInternalServerError
	}

	if code >= http.StatusInternalServerError {
		utils.ErrorLogger.WithField("request_id", c.GetString("request_id")).Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		utils.RespondErrorKind(c, code, string(kind), &services.Error{Kind: kind, Message: "internal server error"})
		return
	}
	utils.RespondErrorKind(c, code, string(kind), err)
}

func respondBadRequest(c *gin.Context, err error) {
	utils.RespondErrorKind(c, http.StatusBadRequest, string(services.KindValidation), err)
}

// paramID parses a positive numeric path parameter.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		respondBadRequest(c, &services.Error{Kind: services.KindValidation, Message: "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// queryBool parses an optional boolean query parameter.
func queryBool(c *gin.Context, name string) (*bool, bool) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, true
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		respondBadRequest(c, &services.Error{Kind: services.KindValidation, Message: name + " must be true or false"})
		return nil, false
	}
	return &value, true
}
