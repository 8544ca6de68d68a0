package specification

import "gorm.io/gorm"

// BySubject filters users by the external identity provider subject id.
type BySubject struct {
	Subject string
}

func (s BySubject) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("subject = ?", s.Subject)
}
