package config

import (
	"os"
	"sync"
)

type ResendConfig struct {
	APIKey string
	From   string
}

var (
	resendConfig *ResendConfig
	resendOnce   sync.Once
)

func LoadResendConfig() *ResendConfig {
	resendOnce.Do(func() {
		from := os.Getenv("RESEND_FROM")
		if from == "" {
			from = "no-reply@codewithlokesh.com"
		}
		resendConfig = &ResendConfig{
			APIKey: os.Getenv("RESEND_API_KEY"),
			From:   from,
		}
	})
	return resendConfig
}
