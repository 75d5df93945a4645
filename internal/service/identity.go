package service

import "github.com/edutrack/backend/internal/model"

// Identity is the explicit caller passed into every operation. Controllers
// resolve it from the auth middleware; nothing below the controller layer
// reads ambient request state.
type Identity struct {
	UserID uint
	Role   string
}

func (id Identity) IsStudent() bool { return id.Role == model.RoleStudent }
func (id Identity) IsTeacher() bool { return id.Role == model.RoleTeacher }
func (id Identity) IsAdmin() bool   { return id.Role == model.RoleAdmin }
