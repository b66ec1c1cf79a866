package domain

// BikeType classifies a bike in the fleet.
type BikeType string

const (
	BikeTypeMountain BikeType = "Mountain"
	BikeTypeCity     BikeType = "City"
	BikeTypeRoad     BikeType = "Road"
	BikeTypeKids     BikeType = "Kids"
	BikeTypeElectric BikeType = "Electric"
)

// BikeStatus represents the current availability of a bike.
type BikeStatus string

const (
	BikeStatusAvailable   BikeStatus = "Available"
	BikeStatusRented      BikeStatus = "Rented"
	BikeStatusMaintenance BikeStatus = "Maintenance"
)

// Bike represents a rentable bike in the fleet.
type Bike struct {
	ID           string
	Model        string
	SerialNumber string
	Type         BikeType
	Status       BikeStatus
	PricePerHour float64
}

// ValidBikeType reports whether t is a known bike type.
func ValidBikeType(t BikeType) bool {
	switch t {
	case BikeTypeMountain, BikeTypeCity, BikeTypeRoad, BikeTypeKids, BikeTypeElectric:
		return true
	}
	return false
}

// ValidBikeStatus reports whether s is a known bike status.
func ValidBikeStatus(s BikeStatus) bool {
	switch s {
	case BikeStatusAvailable, BikeStatusRented, BikeStatusMaintenance:
		return true
	}
	return false
}
