// Package model contains the database models, split by domain:
// - video.go: Video metadata record
// - user.go: panel User
// - setting.go: key/value Setting overrides
// - seeder.go: HistoryOfSeeders bookkeeping
package model
