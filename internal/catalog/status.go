package catalog

// ResourceCategory classifies what kind of unit a resource is
type ResourceCategory string

const (
	CategoryRoom    ResourceCategory = "ROOM"
	CategoryBanquet ResourceCategory = "BANQUET"
	CategoryTable   ResourceCategory = "TABLE"
)

func IsValidCategory(category string) bool {
	switch ResourceCategory(category) {
	case CategoryRoom, CategoryBanquet, CategoryTable:
		return true
	default:
		return false
	}
}

// ResourceStatus is the operational state of a unit, independent of bookings
type ResourceStatus string

const (
	StatusAvailable   ResourceStatus = "AVAILABLE"
	StatusOccupied    ResourceStatus = "OCCUPIED"
	StatusMaintenance ResourceStatus = "MAINTENANCE"
	StatusReserved    ResourceStatus = "RESERVED"
)

func IsValidStatus(status string) bool {
	switch ResourceStatus(status) {
	case StatusAvailable, StatusOccupied, StatusMaintenance, StatusReserved:
		return true
	default:
		return false
	}
}

// IsBookable reports whether the unit can accept new bookings
func (s ResourceStatus) IsBookable() bool {
	return s == StatusAvailable
}
