package models

const (
	MembershipBronze = "B"
	MembershipSilver = "S"
	MembershipGold   = "G"
)

// MembershipLabels maps each membership code to its display label.
var MembershipLabels = map[string]string{
	MembershipBronze: "Bronze",
	MembershipSilver: "Silver",
	MembershipGold:   "Gold",
}

type Customer struct {
	ID         uint   `gorm:"primaryKey"                    json:"id"`
	FirstName  string `gorm:"size:255;not null;index"       json:"first_name"`
	LastName   string `gorm:"size:255;not null;index"       json:"last_name"`
	Email      string `gorm:"size:255"                      json:"email"`
	Membership string `gorm:"size:1;not null;default:B"     json:"membership"`
}

func (c Customer) String() string { return c.FirstName + " " + c.LastName }
