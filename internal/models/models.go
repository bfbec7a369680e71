package models

// All lists every model managed by AutoMigrate, parents first.
func All() []any {
	return []any{
		&User{},
		&Author{},
		&Book{},
		&Copy{},
		&Client{},
		&Rental{},
		&AuditLog{},
	}
}
