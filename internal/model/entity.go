package model

// EntityLocation is the geographic record for a clinic entity.
type EntityLocation struct {
	EntityID string  `json:"entity_id"`
	Name     string  `json:"name"`
	District string  `json:"district"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
}

// HasCoordinates reports whether both coordinates are known.
// (0, 0) is open ocean and is treated as unknown.
func (e EntityLocation) HasCoordinates() bool {
	return e.Lat != 0 || e.Lon != 0
}

// CompetitorData summarizes one same-district competitor within the analysis
// radius. DistanceMeters is rounded to the nearest integer meter.
type CompetitorData struct {
	EntityID            string `json:"entity_id"`
	Name                string `json:"name"`
	DistanceMeters      int    `json:"distance_meters"`
	HasModernEquipment  bool   `json:"has_modern_equipment"`
	ModernEquipmentName string `json:"modern_equipment_name,omitempty"`
	MenuItemCount       int    `json:"menu_item_count"`
}

// Equipment is one tracked equipment row for a competitor candidate.
// InstallYear 0 means the installation year is unknown.
type Equipment struct {
	EntityID    string `json:"entity_id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	InstallYear int    `json:"install_year,omitempty"`
}
