package enums

// SessionEndReason records why a shopper session left the registry.
type SessionEndReason string

const (
	SessionEndDeleted SessionEndReason = "deleted"
	SessionEndExpired SessionEndReason = "expired"
)

func (r SessionEndReason) String() string {
	return string(r)
}
