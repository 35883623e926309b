package entity

import (
	"freelance-market-api/internal/common"

	"github.com/google/uuid"
)

// Minimal identity record the workflow core reads. Account management
// itself lives outside this service; this is the foreign-key anchor for
// customer and freelancer references.
type User struct {
	Id        uuid.UUID       `json:"id" db:"id"`
	Name      string          `json:"name" db:"name"`
	Email     string          `json:"email" db:"email"`
	Role      common.UserRole `json:"role" db:"role"`
	CreatedAt string          `json:"createdAt" db:"created_at"`
}
