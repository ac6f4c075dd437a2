package model

import "time"

// Invoice.Total is stored as given; it is not checked against the prices of
// the consumed items.
type Invoice struct {
	ID            ID        `json:"id_factura"`
	Timestamp     time.Time `json:"fecha_hora"`
	PatientID     ID        `json:"id_paciente"`
	DoctorID      ID        `json:"id_doctor"`
	ConsumedItems []ID      `json:"servicios_consumidos"`
	Total         float64   `json:"total"`
}

type UpdateInvoiceRequest struct {
	Timestamp     *time.Time `json:"fecha_hora"`
	PatientID     *ID        `json:"id_paciente"`
	DoctorID      *ID        `json:"id_doctor"`
	ConsumedItems *[]ID      `json:"servicios_consumidos"`
	Total         *float64   `json:"total"`
}

func (r UpdateInvoiceRequest) Apply(inv *Invoice) {
	if r.Timestamp != nil {
		inv.Timestamp = *r.Timestamp
	}
	if r.PatientID != nil {
		inv.PatientID = *r.PatientID
	}
	if r.DoctorID != nil {
		inv.DoctorID = *r.DoctorID
	}
	if r.ConsumedItems != nil {
		inv.ConsumedItems = append([]ID(nil), (*r.ConsumedItems)...)
	}
	if r.Total != nil {
		inv.Total = *r.Total
	}
}

type InvoiceFilters struct {
	PatientID *ID
	Date      *time.Time
}
