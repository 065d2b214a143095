// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Structure:
//   - base.go: BaseModel shared by mutable rows
//   - identity.go: users
//   - partner.go: companies
//   - reconciliation.go: periods, reconciliations and their children, sequences
//   - audit.go: activity_logs
//
// AllModels lists every model for sqlite AutoMigrate; postgres schemas come
// from the SQL migrations.
package models

// AllModels returns the models in dependency order
func AllModels() []any {
	return []any{
		&UserModel{},
		&CompanyModel{},
		&PeriodModel{},
		&ReconciliationModel{},
		&DetailModel{},
		&AttachmentModel{},
		&CommentModel{},
		&ActivityLogModel{},
		&SequenceModel{},
	}
}
