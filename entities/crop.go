package entities

// Crop is a planted cultivar. Variety and PlantedDate stay nil when the
// client leaves them out so they serialize as JSON null.
type Crop struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"not null" json:"name"`
	Variety     *string `json:"variety"`
	PlantedDate *string `json:"planted_date"` // YYYY-MM-DD
	Status      string  `gorm:"default:growing" json:"status"`
}

const CropStatusGrowing = "growing"
