package enums

// CartEventKind names the mutation a cart change notification describes.
type CartEventKind string

const (
	CartEventItemAdded       CartEventKind = "item_added"
	CartEventItemRemoved     CartEventKind = "item_removed"
	CartEventQuantityUpdated CartEventKind = "quantity_updated"
	CartEventCleared         CartEventKind = "cleared"
)

// String implements fmt.Stringer.
func (k CartEventKind) String() string {
	return string(k)
}
