package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"marroking/internal/models"
)

// ErrNotLinked means no MercadoLibre session is stored yet.
var ErrNotLinked = errors.New("no linked mercadolibre account")

const (
	keyAccessToken = "access_token"
	keyUserID      = "user_id"
)

// CredentialStore persists the linked MercadoLibre session as key/value
// rows so it survives process restarts.
type CredentialStore struct {
	db *gorm.DB
}

func NewCredentialStore(db *gorm.DB) *CredentialStore {
	return &CredentialStore{db: db}
}

// SaveLink overwrites both session rows in one transaction.
func (s *CredentialStore) SaveLink(accessToken, userID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, cred := range []models.Credential{
			{Key: keyAccessToken, Value: accessToken},
			{Key: keyUserID, Value: userID},
		} {
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value"}),
			}).Create(&cred).Error
			if err != nil {
				return fmt.Errorf("failed to save credential %s: %w", cred.Key, err)
			}
		}
		return nil
	})
}

// Link returns the stored access token and remote account id, or
// ErrNotLinked when either is missing.
func (s *CredentialStore) Link() (accessToken, userID string, err error) {
	accessToken, err = s.value(keyAccessToken)
	if err != nil {
		return "", "", err
	}
	userID, err = s.value(keyUserID)
	if err != nil {
		return "", "", err
	}
	return accessToken, userID, nil
}

func (s *CredentialStore) value(key string) (string, error) {
	var cred models.Credential
	if err := s.db.First(&cred, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotLinked
		}
		return "", fmt.Errorf("failed to load credential %s: %w", key, err)
	}
	if cred.Value == "" {
		return "", ErrNotLinked
	}
	return cred.Value, nil
}
