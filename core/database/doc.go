// Package database handles the database connection for the audit trail.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to
// properly configure MySQL connections based on the application's
// configuration. The audit store (core/audit) is the only consumer; syncs
// run fine without a database when auditing is disabled.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("Audit database unavailable", zap.Error(err))
//	}
package database
