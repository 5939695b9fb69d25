package models

// Credential is one key/value row of the linked MercadoLibre session.
// Exactly two logical keys exist: "access_token" and "user_id"; both are
// overwritten wholesale on every successful OAuth callback.
type Credential struct {
	Key   string `json:"key" gorm:"primaryKey"`
	Value string `json:"value" gorm:"not null"`
}
