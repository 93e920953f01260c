package auth

import (
	"strings"

	errors "github.com/frahmantamala/epic-events-crm/internal"
	"github.com/frahmantamala/epic-events-crm/internal/core/common/validation"
)

type LoginDTO struct {
	Username string
	Password string
}

func (d LoginDTO) Validate() *errors.AppError {
	validator := validation.NewValidator()
	validator.Field("username", strings.TrimSpace(d.Username)).Required()
	validator.Field("password", d.Password).Required()
	return validator.Validate()
}
