package model

type Specialty string

const (
	SpecialtyDentistry   Specialty = "Odontología"
	SpecialtyOralSurgeon Specialty = "Cirujano Oral"
)

// Weekday is the persisted day label of a schedule slot.
type Weekday string

const (
	Monday    Weekday = "Lunes"
	Tuesday   Weekday = "Martes"
	Wednesday Weekday = "Miércoles"
	Thursday  Weekday = "Jueves"
	Friday    Weekday = "Viernes"
	Saturday  Weekday = "Sábado"
	Sunday    Weekday = "Domingo"
)

// TimeSlot is a weekly recurring block. Start and end are kept as the
// "HH:MM" strings they were entered with.
type TimeSlot struct {
	Day   Weekday `json:"dia"`
	Start string  `json:"hora_inicio"`
	End   string  `json:"hora_fin"`
}

type Doctor struct {
	ID        ID         `json:"id_doctor"`
	Name      string     `json:"nombre"`
	Specialty Specialty  `json:"especialidad"`
	Schedule  []TimeSlot `json:"horario"`
}

// WorksOn reports whether any slot falls on day.
func (d Doctor) WorksOn(day Weekday) bool {
	for _, slot := range d.Schedule {
		if slot.Day == day {
			return true
		}
	}
	return false
}

type UpdateDoctorRequest struct {
	Name      *string     `json:"nombre"`
	Specialty *Specialty  `json:"especialidad"`
	Schedule  *[]TimeSlot `json:"horario"`
}

func (r UpdateDoctorRequest) Apply(d *Doctor) {
	setString(&d.Name, r.Name)
	if r.Specialty != nil {
		d.Specialty = *r.Specialty
	}
	if r.Schedule != nil {
		d.Schedule = append([]TimeSlot(nil), (*r.Schedule)...)
	}
}
