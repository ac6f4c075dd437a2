package model

import "time"

// Appointment has no id of its own; it is addressed by AppointmentKey.
type Appointment struct {
	Timestamp time.Time `json:"fecha_hora"`
	PatientID ID        `json:"id_paciente"`
	DoctorID  ID        `json:"id_doctor"`
}

type AppointmentKey struct {
	Timestamp time.Time `json:"fecha_hora" binding:"required"`
	PatientID ID        `json:"id_paciente"`
	DoctorID  ID        `json:"id_doctor"`
}

func (a Appointment) Key() AppointmentKey {
	return AppointmentKey{Timestamp: a.Timestamp, PatientID: a.PatientID, DoctorID: a.DoctorID}
}

// Matches compares the instant exactly; no tolerance window is applied.
func (k AppointmentKey) Matches(a Appointment) bool {
	return a.Timestamp.Equal(k.Timestamp) && a.PatientID == k.PatientID && a.DoctorID == k.DoctorID
}

type UpdateAppointmentRequest struct {
	Timestamp *time.Time `json:"fecha_hora"`
	PatientID *ID        `json:"id_paciente"`
	DoctorID  *ID        `json:"id_doctor"`
}

func (r UpdateAppointmentRequest) Apply(a *Appointment) {
	if r.Timestamp != nil {
		a.Timestamp = *r.Timestamp
	}
	if r.PatientID != nil {
		a.PatientID = *r.PatientID
	}
	if r.DoctorID != nil {
		a.DoctorID = *r.DoctorID
	}
}

type AppointmentFilters struct {
	DoctorID  *ID
	PatientID *ID
	Date      *time.Time
}
