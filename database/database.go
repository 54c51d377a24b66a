package database

import (
	"gorm.io/gorm"
)

type Database struct {
	userRepo       *UserRepo
	projectRepo    *ProjectRepo
	engagementRepo *EngagementRepo
}

// New initializes a new Database struct with each repository using a shared
// GORM database instance. trigramSearch reports whether the pg_trgm
// extension is available; when it is not, project search falls back to
// in-process scoring.
func New(db *gorm.DB, trigramSearch bool) Database {
	return Database{
		userRepo:       NewUserRepo(db),
		projectRepo:    NewProjectRepo(db, trigramSearch),
		engagementRepo: NewEngagementRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) EngagementRepo() *EngagementRepo {
	return d.engagementRepo
}
