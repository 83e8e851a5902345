package models

import "time"

// ClientState is one persisted key/value entry of client-side state, scoped
// by profile so several logins can share one store.
type ClientState struct {
	Profile   string    `gorm:"primarykey;type:varchar(100)"`
	Key       string    `gorm:"primarykey;type:varchar(100)"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (ClientState) TableName() string {
	return "client_states"
}
