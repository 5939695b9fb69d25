package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"marroking/internal/database"
	"marroking/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.New(fmt.Sprintf("sqlite://file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	sqlDB, err := db.DB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db.DB
}

func strPtr(s string) *string {
	return &s
}

func testUser(username string) *models.User {
	return &models.User{
		Username: username,
		Password: "$2a$10$not-a-real-hash",
		Role:     "user",
	}
}
