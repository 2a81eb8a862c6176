package repository

import (
	"context"

	domainRepo "github.com/sangkips/discount-label-api/internal/domain/repository"
	"gorm.io/gorm"
)

// OperatorScope returns a GORM scope that limits a query to the operator
// in the context. Without an operator the query matches nothing.
func OperatorScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		operatorID, ok := domainRepo.GetOperatorID(ctx)
		if !ok {
			return db.Where("1 = 0")
		}
		return db.Where("operator_id = ?", operatorID)
	}
}
