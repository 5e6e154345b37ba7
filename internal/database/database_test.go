package database

import (
	"path/filepath"
	"testing"

	"news-portal-api/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestOpenAndSeed(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "news.db"), logger.Silent)
	require.NoError(t, err)

	n, err := Seed(db)
	require.NoError(t, err)
	require.Equal(t, len(DefaultCategories), n)

	// Second run is a no-op.
	n, err = Seed(db)
	require.NoError(t, err)
	require.Equal(t, 0, n)

	var sports models.Category
	require.NoError(t, db.First(&sports, "slug = ?", "sports").Error)
	require.Equal(t, "খেলা", sports.Name)
}
