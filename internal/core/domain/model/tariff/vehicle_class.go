package tariff

import (
	"fmt"
	"strings"

	"shipping/internal/pkg/errs"
)

// VehicleClass identifies the kind of vehicle a tariff profile prices for.
//
// Generic is used by named tariffs that are not tied to a vehicle and may
// therefore leave capacity limits unset.
type VehicleClass int

const (
	// UnknownClass is the zero value and is never valid.
	UnknownClass VehicleClass = iota

	// ClassMotorcycle prices light, small parcels.
	ClassMotorcycle

	// ClassCar prices medium parcels.
	ClassCar

	// ClassTruck prices heavy and bulky freight.
	ClassTruck

	// ClassGeneric prices through a named tariff without a vehicle of its own.
	ClassGeneric
)

func getVehicleClassStrings() map[VehicleClass]string {
	return map[VehicleClass]string{
		UnknownClass:    "unknown",
		ClassMotorcycle: "motorcycle",
		ClassCar:        "car",
		ClassTruck:      "truck",
		ClassGeneric:    "generic",
	}
}

// String returns the lower-case class name used in the API and in persistence.
func (c VehicleClass) String() string {
	if str, ok := getVehicleClassStrings()[c]; ok {
		return str
	}
	return "unknown"
}

// Validate rejects UnknownClass and values outside the enumeration.
func (c VehicleClass) Validate() error {
	if c <= UnknownClass || c > ClassGeneric {
		return errs.NewValueIsInvalidErrorWithCause(
			"vehicle class is invalid",
			fmt.Errorf("%d is not a valid vehicle class", c),
		)
	}
	return nil
}

// HasCapacityLimits reports whether profiles of this class must declare
// maximum weight and volume.
func (c VehicleClass) HasCapacityLimits() bool {
	return c == ClassMotorcycle || c == ClassCar || c == ClassTruck
}

// ParseVehicleClass converts a class name, case-insensitively, into a VehicleClass.
func ParseVehicleClass(s string) (VehicleClass, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for class, str := range getVehicleClassStrings() {
		if class != UnknownClass && str == name {
			return class, nil
		}
	}
	return UnknownClass, errs.NewValueIsInvalidErrorWithCause(
		"vehicle class is invalid",
		fmt.Errorf("%q is not a known vehicle class", s),
	)
}
