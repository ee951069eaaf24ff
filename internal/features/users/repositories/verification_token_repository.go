package users_repositories

import (
	"errors"

	users_models "taskflow/internal/features/users/models"
	"taskflow/internal/storage"

	"gorm.io/gorm"
)

type VerificationTokenRepository struct{}

// ReplaceToken drops any previous token for the identifier so only the latest link works.
func (r *VerificationTokenRepository) ReplaceToken(token *users_models.VerificationToken) error {
	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("identifier = ?", token.Identifier).
			Delete(&users_models.VerificationToken{}).Error; err != nil {
			return err
		}

		return tx.Create(token).Error
	})
}

func (r *VerificationTokenRepository) GetToken(
	identifier string,
	token string,
) (*users_models.VerificationToken, error) {
	var verificationToken users_models.VerificationToken

	err := storage.GetDb().
		Where("identifier = ? AND token = ?", identifier, token).
		First(&verificationToken).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &verificationToken, nil
}

func (r *VerificationTokenRepository) DeleteToken(identifier string, token string) error {
	return storage.GetDb().
		Where("identifier = ? AND token = ?", identifier, token).
		Delete(&users_models.VerificationToken{}).Error
}
