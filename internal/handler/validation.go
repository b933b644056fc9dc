package handler

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/smilecare/clinic-api/internal/authz"
	"github.com/smilecare/clinic-api/internal/model"
)

// RegisterValidators installs the custom binding tags used by request
// models. Call once at startup, before the router handles traffic.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	if err := v.RegisterValidation("staffrole", validStaffRole); err != nil {
		return err
	}
	return v.RegisterValidation("assignmentrole", validAssignmentRole)
}

func validStaffRole(fl validator.FieldLevel) bool {
	return authz.Role(fl.Field().String()).Valid()
}

func validAssignmentRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case model.AssignmentRoleOrthodontist,
		model.AssignmentRoleSurgeon,
		model.AssignmentRoleNurse,
		model.AssignmentRoleStudent:
		return true
	}
	return false
}
