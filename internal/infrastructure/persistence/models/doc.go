// Package models contains GORM persistence models for the catering engine.
// Domain entities stay free of ORM tags; every model here carries the table
// mapping and converts to and from its domain type with ToDomain/FromDomain.
//
//   - base.go: BaseModel and AggregateModel (optimistic lock version)
//   - inventory.go: inventory items and the append-only transaction ledger
//   - menu.go: dishes and their ingredient lines
//   - finance.go: expenses
//   - planning.go: archived plan records
package models
