package model

import "time"

type Patient struct {
	ID                 ID        `json:"id_paciente"`
	Name               string    `json:"nombre"`
	BirthDate          time.Time `json:"fecha_nacimiento"`
	Address            string    `json:"direccion"`
	Phone              int64     `json:"telefono"`
	Allergies          []string  `json:"alergias"`
	CurrentMedications []string  `json:"medicamentos_actuales"`
	MedicalConditions  []string  `json:"condiciones_medicas"`
}

type UpdatePatientRequest struct {
	Name               *string    `json:"nombre"`
	BirthDate          *time.Time `json:"fecha_nacimiento"`
	Address            *string    `json:"direccion"`
	Phone              *int64     `json:"telefono"`
	Allergies          *[]string  `json:"alergias"`
	CurrentMedications *[]string  `json:"medicamentos_actuales"`
	MedicalConditions  *[]string  `json:"condiciones_medicas"`
}

func (r UpdatePatientRequest) Apply(p *Patient) {
	setString(&p.Name, r.Name)
	setString(&p.Address, r.Address)
	if r.BirthDate != nil {
		p.BirthDate = *r.BirthDate
	}
	if r.Phone != nil {
		p.Phone = *r.Phone
	}
	setStrings(&p.Allergies, r.Allergies)
	setStrings(&p.CurrentMedications, r.CurrentMedications)
	setStrings(&p.MedicalConditions, r.MedicalConditions)
}
