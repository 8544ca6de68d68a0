package specification

import "gorm.io/gorm"

type ByProviderID struct {
	ProviderID string
}

func (s ByProviderID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("provider_id = ?", s.ProviderID)
}

type ByProviderType struct {
	Type string
}

func (s ByProviderType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("type = ?", s.Type)
}

type ByEndpoint struct {
	Endpoint string
}

func (s ByEndpoint) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("endpoint = ?", s.Endpoint)
}

type ByName struct {
	Name string
}

func (s ByName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("name = ?", s.Name)
}
