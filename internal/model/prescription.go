package model

type Medication struct {
	Name           string `json:"nombre"`
	Dose           string `json:"dosis"`
	FrequencyHours int    `json:"frecuencia_horas"`
	DurationDays   int    `json:"duracion_dias"`
}

// Prescription is addressed by its (patient, doctor) pair. Edits and deletes
// act on the first stored match only.
type Prescription struct {
	PatientID   ID           `json:"id_paciente"`
	DoctorID    ID           `json:"id_doctor"`
	Medications []Medication `json:"medicamentos"`
}

func (p Prescription) Is(patientID, doctorID ID) bool {
	return p.PatientID == patientID && p.DoctorID == doctorID
}

type UpdatePrescriptionRequest struct {
	PatientID   *ID           `json:"id_paciente"`
	DoctorID    *ID           `json:"id_doctor"`
	Medications *[]Medication `json:"medicamentos"`
}

func (r UpdatePrescriptionRequest) Apply(p *Prescription) {
	if r.PatientID != nil {
		p.PatientID = *r.PatientID
	}
	if r.DoctorID != nil {
		p.DoctorID = *r.DoctorID
	}
	if r.Medications != nil {
		p.Medications = append([]Medication(nil), (*r.Medications)...)
	}
}
