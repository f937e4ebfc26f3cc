package model

// Sector is a named text blob.
type Sector struct {
	Name        string
	Data        string
	Description string
}

// NewSector validates name and returns a sector.
func NewSector(name, data, description string) (*Sector, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	return &Sector{Name: name, Data: data, Description: description}, nil
}
