package models

// NationalIDLength is the exact length of a driver national id (CPF).
const NationalIDLength = 11

// Driver represents the drivers table in the database.
type Driver struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	NationalID string  `json:"nationalId"`
	Phone      string  `json:"phone"`
	Email      *string `json:"email"`
}

// DriverUpdate carries the fields of a partial edit. A nil pointer keeps the
// stored value. Email uses OptionalString so an explicit null clears it.
type DriverUpdate struct {
	Name       *string
	NationalID *string
	Phone      *string
	Email      OptionalString
}

// Apply returns a copy of d with the present fields overwritten.
func (u DriverUpdate) Apply(d Driver) Driver {
	if u.Name != nil {
		d.Name = *u.Name
	}
	if u.NationalID != nil {
		d.NationalID = *u.NationalID
	}
	if u.Phone != nil {
		d.Phone = *u.Phone
	}
	if u.Email.Set {
		d.Email = u.Email.Value
	}
	return d
}
