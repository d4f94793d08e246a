package models

type GameStatus int

const (
	StatusInactive GameStatus = 0
	StatusActive   GameStatus = 1
)

func (s GameStatus) Valid() bool {
	return s == StatusInactive || s == StatusActive
}

// Toggled returns the opposite status.
func (s GameStatus) Toggled() GameStatus {
	if s == StatusActive {
		return StatusInactive
	}
	return StatusActive
}

func (s GameStatus) String() string {
	if s == StatusActive {
		return "active"
	}
	return "inactive"
}

// Game is a single inventory record. Code and Genre are nil when unset.
type Game struct {
	ID       int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Code     *string    `json:"code" gorm:"size:64;uniqueIndex"`
	Title    string     `json:"title" gorm:"size:255;not null"`
	Platform string     `json:"platform" gorm:"size:100;not null"`
	Genre    *string    `json:"genre" gorm:"size:100"`
	Price    float64    `json:"price" gorm:"type:decimal(10,2);not null"`
	Stock    int        `json:"stock" gorm:"not null"`
	Status   GameStatus `json:"status" gorm:"type:tinyint;not null"`
}

func (Game) TableName() string { return "games" }

func (g Game) Active() bool { return g.Status == StatusActive }

// GameForm holds the raw form values of a create or edit submission.
type GameForm struct {
	Code     string
	Title    string
	Platform string
	Genre    string
	Price    string
	Stock    string
	Status   string
}

// View selects which records a listing page shows.
type View string

const (
	ViewActive   View = "active"
	ViewInactive View = "inactive"
	ViewAll      View = "all"
)
