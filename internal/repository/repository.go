package repository

import (
	"fmt"

	"github.com/yourusername/fairline/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Snapshot    SnapshotRepository
	Pass        PassRepository
	Opportunity OpportunityRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Snapshot:    NewPostgresSnapshotRepository(db),
		Pass:        NewPostgresPassRepository(db),
		Opportunity: NewPostgresOpportunityRepository(db),
	}, nil
}
