package model

import (
	"gorm.io/datatypes"
)

// PlannedAnalysis is one scheduled analysis slot: which bacterium runs
// on which weekday/week at which site.
type PlannedAnalysis struct {
	BaseModel
	Bacterium  string     `gorm:"type:varchar(64);not null" json:"bacterium"`
	DelayClass DelayClass `gorm:"type:varchar(8)" json:"delay_class"`
	Weekday    int        `gorm:"type:int;not null" json:"weekday"`
	WeekNumber int        `gorm:"type:int;not null;index" json:"week_number"`
	Site       string     `gorm:"type:varchar(16);not null;index" json:"site"`
}

func (*PlannedAnalysis) TableName() string {
	return "analyses_planifiees"
}

// OngoingAnalysis is one in-flight analysis entry. Status is free-form;
// Payload carries whatever the bench tooling attaches.
type OngoingAnalysis struct {
	BaseModel
	Bacterium  string         `gorm:"type:varchar(64);not null" json:"bacterium"`
	DelayClass DelayClass     `gorm:"type:varchar(8)" json:"delay_class"`
	Site       string         `gorm:"type:varchar(16);not null;index" json:"site"`
	Status     string         `gorm:"type:varchar(64)" json:"status"`
	Payload    datatypes.JSON `gorm:"type:jsonb" json:"payload"`
}

func (*OngoingAnalysis) TableName() string {
	return "analyses_en_cours"
}
