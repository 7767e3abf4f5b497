package entities

import (
	"regexp"
	"strings"
)

type VehicleStatus string

const (
	VehicleDisponible      VehicleStatus = "Disponible"
	VehicleEnRecinto       VehicleStatus = "En Recinto"
	VehicleEnTaller        VehicleStatus = "En Taller"
	VehicleEnProceso       VehicleStatus = "En Proceso"
	VehiclePendiente       VehicleStatus = "Pendiente"
	VehicleFueraDeServicio VehicleStatus = "Fuera de Servicio"
)

// Vehicle is a fleet vehicle keyed by its normalized plate.
//
// Storage model (DynamoDB):
//   - PK: plate
type Vehicle struct {
	Plate    string        `json:"plate"`
	Brand    string        `json:"brand"`
	Model    string        `json:"model"`
	Year     int           `json:"year,omitempty"`
	Type     string        `json:"type,omitempty"`
	Location string        `json:"location,omitempty"`
	Status   VehicleStatus `json:"status"`
}

var platePattern = regexp.MustCompile(`^[A-Z0-9]{4,8}$`)

// PlateFormatCandidates are the stricter formats used by different front-end
// revisions. They are advisory until checked against real fleet data; the
// backend only enforces platePattern.
var PlateFormatCandidates = []*regexp.Regexp{
	regexp.MustCompile(`^[A-Z]{2,3}\d{2,3}$`),
	regexp.MustCompile(`^[A-Z]{2,4}\d{2,3}$`),
}

// NormalizePlate strips dots, dashes and spaces and upper-cases the plate
// (KG.JV-93 -> KGJV93).
func NormalizePlate(plate string) string {
	r := strings.NewReplacer(".", "", "-", "", " ", "")
	return strings.ToUpper(r.Replace(strings.TrimSpace(plate)))
}

// ValidPlate reports whether an already normalized plate is acceptable.
func ValidPlate(plate string) bool {
	return platePattern.MatchString(plate)
}

// MatchingPlateCandidates returns the indexes of PlateFormatCandidates that
// accept the normalized plate.
func MatchingPlateCandidates(plate string) []int {
	var out []int
	for i, re := range PlateFormatCandidates {
		if re.MatchString(plate) {
			out = append(out, i)
		}
	}
	return out
}
