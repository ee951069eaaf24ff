package users_repositories

import (
	"errors"
	"sync"

	users_models "taskflow/internal/features/users/models"
	"taskflow/internal/storage"
)

// SecretKeyRepository reads the JWT signing secret seeded by migrations.
// The value never changes at runtime so it is read once.
type SecretKeyRepository struct {
	mu     sync.RWMutex
	secret string
}

func (r *SecretKeyRepository) GetSecretKey() (string, error) {
	r.mu.RLock()
	secret := r.secret
	r.mu.RUnlock()

	if secret != "" {
		return secret, nil
	}

	var secretKey users_models.SecretKey
	if err := storage.GetDb().First(&secretKey).Error; err != nil {
		return "", err
	}

	if secretKey.Secret == "" {
		return "", errors.New("secret key is empty")
	}

	r.mu.Lock()
	r.secret = secretKey.Secret
	r.mu.Unlock()

	return secretKey.Secret, nil
}
