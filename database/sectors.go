package database

import (
	"github.com/vegasq/mochadb/errors"
	"github.com/vegasq/mochadb/model"
	"github.com/vegasq/mochadb/store"
)

func (db *Database) sectorNode(name string) (*store.Node, error) {
	if err := db.check(); err != nil {
		return nil, err
	}
	n := db.container(store.SectorsNode).Child(name)
	if n == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "sector %q", name)
	}
	return n, nil
}

// AddSector stores a new sector.
func (db *Database) AddSector(s *model.Sector) error {
	if err := db.check(); err != nil {
		return err
	}
	if err := model.ValidateName(s.Name); err != nil {
		return err
	}
	if err := db.container(store.SectorsNode).AddUnique(sectorToNode(s)); err != nil {
		return errors.Wrapf(err, "sector %q", s.Name)
	}
	return db.commit("AddSector", store.JoinPath(store.SectorsNode, s.Name))
}

// RemoveSector deletes a sector.
func (db *Database) RemoveSector(name string) error {
	if _, err := db.sectorNode(name); err != nil {
		return err
	}
	db.container(store.SectorsNode).Remove(name)
	return db.commit("RemoveSector", store.JoinPath(store.SectorsNode, name))
}

// RenameSector renames a sector.
func (db *Database) RenameSector(name, newName string) error {
	if _, err := db.sectorNode(name); err != nil {
		return err
	}
	if err := model.ValidateName(newName); err != nil {
		return err
	}
	if err := db.container(store.SectorsNode).Rename(name, newName); err != nil {
		return err
	}
	return db.commit("RenameSector", store.JoinPath(store.SectorsNode, newName))
}

// GetSector returns a copy of a sector.
func (db *Database) GetSector(name string) (*model.Sector, error) {
	n, err := db.sectorNode(name)
	if err != nil {
		return nil, err
	}
	return sectorFromNode(n), nil
}

// GetSectors returns every sector in storage order.
func (db *Database) GetSectors() ([]*model.Sector, error) {
	if err := db.check(); err != nil {
		return nil, err
	}
	var out []*model.Sector
	for _, n := range db.container(store.SectorsNode).Children {
		out = append(out, sectorFromNode(n))
	}
	return out, nil
}

// ExistsSector reports whether a sector exists.
func (db *Database) ExistsSector(name string) (bool, error) {
	if err := db.check(); err != nil {
		return false, err
	}
	return db.container(store.SectorsNode).Child(name) != nil, nil
}

// SectorCount returns the number of sectors.
func (db *Database) SectorCount() (int, error) {
	if err := db.check(); err != nil {
		return 0, err
	}
	return len(db.container(store.SectorsNode).Children), nil
}

// SectorData returns a sector's data.
func (db *Database) SectorData(name string) (string, error) {
	n, err := db.sectorNode(name)
	if err != nil {
		return "", err
	}
	return n.Value, nil
}

// SetSectorData replaces a sector's data.
func (db *Database) SetSectorData(name, data string) error {
	n, err := db.sectorNode(name)
	if err != nil {
		return err
	}
	n.Value = data
	return db.commit("SetSectorData", store.JoinPath(store.SectorsNode, name))
}

// SectorDescription returns a sector's description.
func (db *Database) SectorDescription(name string) (string, error) {
	n, err := db.sectorNode(name)
	if err != nil {
		return "", err
	}
	return n.Attr(attrDescription), nil
}

// SetSectorDescription replaces a sector's description.
func (db *Database) SetSectorDescription(name, description string) error {
	n, err := db.sectorNode(name)
	if err != nil {
		return err
	}
	n.SetAttr(attrDescription, description)
	return db.commit("SetSectorDescription", store.JoinPath(store.SectorsNode, name))
}
