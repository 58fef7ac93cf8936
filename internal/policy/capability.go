package policy

import (
	"uplift-backend/internal/domain/entity"

	"github.com/google/uuid"
)

func IsAdmin(id entity.Identity) bool {
	return id.RoleID == entity.RoleIDAdmin
}

func IsDoctor(id entity.Identity) bool {
	return id.RoleID == entity.RoleIDDoctor
}

func IsOwner(id entity.Identity, ownerID uuid.UUID) bool {
	return id.UserID != uuid.Nil && id.UserID == ownerID
}

// CanManage allows the owner of a resource or an admin.
func CanManage(id entity.Identity, ownerID uuid.UUID) bool {
	return IsOwner(id, ownerID) || IsAdmin(id)
}

func IsApprovedDoctor(profile *entity.DoctorProfile) bool {
	return profile != nil && profile.IsApproved()
}

// IsBookable requires an approved doctor who is currently available.
func IsBookable(profile *entity.DoctorProfile) bool {
	return IsApprovedDoctor(profile) && profile.IsAvailable()
}
