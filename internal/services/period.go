package services

import "gorm.io/gorm"

// Production runs on PostgreSQL while the test suite runs on sqlite, and the
// two spell date-part extraction differently. These helpers return the
// month/year match clause for the connected dialect; the transaction date
// column is qualified so the clauses also work inside joined queries.

func monthClause(db *gorm.DB) string {
	if db.Dialector.Name() == "sqlite" {
		return "CAST(strftime('%m', transactions.date) AS INTEGER) = ?"
	}
	return "EXTRACT(MONTH FROM transactions.date) = ?"
}

func yearClause(db *gorm.DB) string {
	if db.Dialector.Name() == "sqlite" {
		return "CAST(strftime('%Y', transactions.date) AS INTEGER) = ?"
	}
	return "EXTRACT(YEAR FROM transactions.date) = ?"
}

func validMonth(month int) bool { return month >= 1 && month <= 12 }
