package model

// ID identifies a record within its own store. Callers supply identifiers;
// nothing in the system generates or deduplicates them.
type ID int64

// Outcome reports whether a mutation found its target.
type Outcome string

const (
	OutcomeApplied  Outcome = "applied"
	OutcomeNotFound Outcome = "not_found"
)

func (o Outcome) Applied() bool {
	return o == OutcomeApplied
}

// Store names of the persisted collections.
const (
	StoreAccounts      = "usuarios"
	StorePatients      = "pacientes"
	StoreDoctors       = "doctores"
	StoreAppointments  = "citas"
	StorePrescriptions = "recetas"
	StoreBillableItems = "productos_servicios"
	StoreInvoices      = "facturas"
	StoreOutbox        = "eventos"
)

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setStrings(dst *[]string, src *[]string) {
	if src != nil {
		*dst = append([]string(nil), (*src)...)
	}
}
