package model

type ItemKind string

const (
	ItemKindService ItemKind = "Servicio"
	ItemKindProduct ItemKind = "Producto"
)

// BillableItem is a service or product that can appear on an invoice.
type BillableItem struct {
	ID    ID       `json:"id_producto_servicio"`
	Kind  ItemKind `json:"tipo"`
	Name  string   `json:"nombre"`
	Price float64  `json:"precio"`
}

type UpdateBillableItemRequest struct {
	Kind  *ItemKind `json:"tipo"`
	Name  *string   `json:"nombre"`
	Price *float64  `json:"precio"`
}

func (r UpdateBillableItemRequest) Apply(i *BillableItem) {
	setString(&i.Name, r.Name)
	if r.Kind != nil {
		i.Kind = *r.Kind
	}
	if r.Price != nil {
		i.Price = *r.Price
	}
}
