package event

// Event types emitted after a mutation has been saved.
const (
	AccountCreated  = "ACCOUNT_CREATE"
	AccountUpdated  = "ACCOUNT_UPDATE"
	AccountDisabled = "ACCOUNT_DISABLE"

	PatientCreated = "PATIENT_CREATE"
	PatientUpdated = "PATIENT_UPDATE"
	PatientDeleted = "PATIENT_DELETE"

	DoctorCreated = "DOCTOR_CREATE"
	DoctorUpdated = "DOCTOR_UPDATE"
	DoctorDeleted = "DOCTOR_DELETE"

	AppointmentScheduled   = "APPOINTMENT_SCHEDULE"
	AppointmentCancelled   = "APPOINTMENT_CANCEL"
	AppointmentRescheduled = "APPOINTMENT_RESCHEDULE"

	PrescriptionCreated = "PRESCRIPTION_CREATE"
	PrescriptionUpdated = "PRESCRIPTION_UPDATE"
	PrescriptionDeleted = "PRESCRIPTION_DELETE"

	ItemCreated = "ITEM_CREATE"
	ItemUpdated = "ITEM_UPDATE"
	ItemDeleted = "ITEM_DELETE"

	InvoiceCreated = "INVOICE_CREATE"
	InvoiceUpdated = "INVOICE_UPDATE"
	InvoiceDeleted = "INVOICE_DELETE"
)
