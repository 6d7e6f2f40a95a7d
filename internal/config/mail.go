package config

import (
	"os"
	"sync"
)

type MailConfig struct {
	APIURL      string
	APIKey      string
	FromAddress string
}

var (
	mailConfig *MailConfig
	mailOnce   sync.Once
)

func LoadMailConfig() *MailConfig {
	mailOnce.Do(func() {
		from := os.Getenv("MAIL_FROM")
		if from == "" {
			from = "no-reply@jobtrackr.app"
		}
		mailConfig = &MailConfig{
			APIURL:      os.Getenv("MAIL_API_URL"),
			APIKey:      os.Getenv("MAIL_API_KEY"),
			FromAddress: from,
		}
	})
	return mailConfig
}
