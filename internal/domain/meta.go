package domain

// Meta carries the fields every stored record shares. IDs are opaque UUID
// strings assigned on insert and never reused; timestamps are RFC 3339.
type Meta struct {
	ID        string `json:"id"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// RecordMeta exposes the shared fields to the generic collection layer.
func (m *Meta) RecordMeta() *Meta { return m }

// Record is satisfied by pointers to any stored entity.
type Record interface {
	RecordMeta() *Meta
}

// ClampProgress keeps progress inside [0,100]; invalid input defaults to 0
// at the write boundary, the store never rejects.
func ClampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
