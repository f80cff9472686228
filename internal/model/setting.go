package model

// Setting is a single run-time configurable key/value pair. Unset keys
// fall back to hardcoded defaults, see the store package.
type Setting struct {
	Key   string `gorm:"primaryKey" json:"key"`
	Value string `gorm:"not null;default:''" json:"value"`
}
