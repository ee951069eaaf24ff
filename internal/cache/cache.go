package cache

import (
	"crypto/tls"
	"sync"
	"time"

	"taskflow/internal/config"

	"github.com/valkey-io/valkey-go"
)

var (
	once         sync.Once
	valkeyClient valkey.Client
)

// GetCache returns the shared Valkey client used for caching, the email
// outbox queue and rate limiting.
func GetCache() valkey.Client {
	once.Do(func() {
		env := config.GetEnv()

		options := valkey.ClientOption{
			InitAddress:      []string{env.ValkeyHost + ":" + env.ValkeyPort},
			Username:         env.ValkeyUsername,
			Password:         env.ValkeyPassword,
			ConnWriteTimeout: 5 * time.Second,
			DisableCache:     true,
			BlockingPoolSize: 4,
		}

		if env.ValkeyIsSsl {
			options.TLSConfig = &tls.Config{
				ServerName: env.ValkeyHost,
			}
		}

		client, err := valkey.NewClient(options)
		if err != nil {
			panic(err)
		}

		valkeyClient = client
	})

	return valkeyClient
}

func CloseCache() {
	if valkeyClient != nil {
		valkeyClient.Close()
	}
}
