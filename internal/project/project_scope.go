package project

import (
	"time"

	"gorm.io/gorm"
)

// ActiveOn keeps projects whose period contains date. An open end date means
// the project runs indefinitely.
func ActiveOn(date time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Where("projects.start_date <= ?", date).
			Where("(projects.end_date IS NULL OR projects.end_date >= ?)", date)
	}
}
