package fleet

import "time"

type Vehicle struct {
	ID           int64     `gorm:"primaryKey"`
	Registration string    `gorm:"column:registration;uniqueIndex;not null"`
	Make         string    `gorm:"column:make"`
	Model        string    `gorm:"column:model"`
	// liters per 100 km; zero means the rate is unknown
	Consumption float64   `gorm:"column:consumption;default:0"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

type Driver struct {
	ID        int64     `gorm:"primaryKey"`
	FirstName string    `gorm:"column:first_name;not null"`
	LastName  string    `gorm:"column:last_name;not null"`
	Role      string    `gorm:"column:role"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

type Destination struct {
	ID         int64     `gorm:"primaryKey"`
	StartPoint string    `gorm:"column:start_point;not null"`
	EndPoint   string    `gorm:"column:end_point;not null"`
	Company    string    `gorm:"column:company"`
	DistanceKm float64   `gorm:"column:distance_km;not null"`
	Note       string    `gorm:"column:note"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

// FuelRecord keeps its date as a fixed-format YYYY-MM-DD string so monthly
// sums can match on a date substring.
type FuelRecord struct {
	ID           int64     `gorm:"primaryKey"`
	Registration string    `gorm:"column:registration;not null;index"`
	Date         string    `gorm:"column:date;not null"`
	Liters       float64   `gorm:"column:liters;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

type TripLeg struct {
	ID           int64     `gorm:"primaryKey"`
	Date         string    `gorm:"column:date;not null"`
	Driver       string    `gorm:"column:driver;not null"`
	Origin       string    `gorm:"column:origin;not null"`
	Destination  string    `gorm:"column:destination;not null"`
	Company      string    `gorm:"column:company"`
	DistanceKm   int       `gorm:"column:distance_km;not null"`
	Registration string    `gorm:"column:registration;not null;index"`
	MonthLabel   string    `gorm:"column:month_label"`
	Month        int       `gorm:"column:month;not null;index"`
	Year         int       `gorm:"column:year;not null;index"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}
