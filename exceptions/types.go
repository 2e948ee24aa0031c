package exceptions

var (
	ErrNoSuchBedType  = New(KindInvalidInput, "hospital has no beds of this type")
	ErrInvalidBedType = New(KindInvalidInput, "invalid bed type")
	ErrMissingBedType = New(KindInvalidInput, "bed type is required for IPD patients")
	ErrNoCapacity     = New(KindNoCapacity, "no beds available")
	ErrBedOverRelease = New(KindConflict, "bed released beyond its total")

	ErrHospitalNotFound    = New(KindNotFound, "hospital not found")
	ErrPatientNotFound     = New(KindNotFound, "patient not found")
	ErrDoctorNotFound      = New(KindNotFound, "doctor not found")
	ErrAppointmentNotFound = New(KindNotFound, "appointment not found")
	ErrEquipmentNotFound   = New(KindNotFound, "equipment not found")
	ErrMedicineNotFound    = New(KindNotFound, "medicine not found")

	ErrInvalidStatus     = New(KindInvalidInput, "invalid status")
	ErrInvalidTransition = New(KindInvalidInput, "status transition not allowed")
	ErrDuplicateDoctor   = New(KindConflict, "a doctor with this phone number already exists")
	ErrConflict          = New(KindConflict, "concurrent update conflict, retry the request")

	ErrUnauthorized = New(KindUnauthorized, "unauthorized")
	ErrForbidden    = New(KindForbidden, "forbidden")
)
