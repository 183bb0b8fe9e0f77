package domain

// HasRole reports whether the caller holds one of roles.
func HasRole(id Identity, roles ...Role) bool {
	for _, r := range roles {
		if id.Role == r {
			return true
		}
	}
	return false
}

// IsOwnerOfSlot reports whether the caller is the dentist who owns slotDentistID's slot.
func IsOwnerOfSlot(id Identity, slotDentistID int64) bool {
	return id.Role == RoleDentist && id.UserID == slotDentistID
}

// IsOwnerOfAppointment reports whether the caller is the patient on a.
func IsOwnerOfAppointment(id Identity, a *Appointment) bool {
	return id.Role == RolePatient && a != nil && a.PatientID == id.UserID
}

// CanManageAppointment reports whether the caller may cancel a: its patient or
// the dentist who owns its slot.
func CanManageAppointment(id Identity, a *Appointment) bool {
	return IsOwnerOfAppointment(id, a) || (a != nil && IsOwnerOfSlot(id, a.DentistID))
}
