package domain

import (
	"github.com/google/uuid"
)

type UserID uuid.UUID

func NewUserID() UserID {
	return UserID(uuid.New())
}

// ParseUserID разбирает строковое представление идентификатора пользователя.
func ParseUserID(s string) (UserID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UserID{}, err
	}
	return UserID(id), nil
}

func (u UserID) String() string {
	return uuid.UUID(u).String()
}

func (u UserID) MarshalText() ([]byte, error) {
	return uuid.UUID(u).MarshalText()
}

func (u *UserID) UnmarshalText(data []byte) error {
	return (*uuid.UUID)(u).UnmarshalText(data)
}
