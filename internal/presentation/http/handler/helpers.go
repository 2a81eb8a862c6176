package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/discount-label-api/pkg/apperror"
	"github.com/sangkips/discount-label-api/pkg/utils"
)

// GetOperatorID extracts the operator ID from the Gin context
func GetOperatorID(c *gin.Context) *uuid.UUID {
	val, exists := c.Get("operator_id")
	if !exists {
		return nil
	}
	operatorID, ok := val.(uuid.UUID)
	if !ok {
		return nil
	}
	return &operatorID
}

// GetUsername extracts the operator username from the Gin context
func GetUsername(c *gin.Context) string {
	return c.GetString("username")
}

// GetOperatorOutlet extracts the outlet carried by the operator token
func GetOperatorOutlet(c *gin.Context) string {
	return c.GetString("outlet")
}

// paramID parses the :id path parameter.
func paramID(c *gin.Context) (uuid.UUID, error) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperror.NewBadRequestError("Invalid ID format")
	}
	return id, nil
}
