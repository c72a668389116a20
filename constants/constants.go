// Package constants centralizes the configuration keys, response messages
// and security parameters of the protected storage service.
package constants

import "time"

// Configuration keys looked up in the external key-value source.
// The names are fixed by the deployment contract.
const (
	SettingFilePath         = "FilePath"
	SettingUploadPassword   = "UploadPassword"
	SettingDownloadPassword = "DownloadPassword"
	SettingWebhookURLs      = "SlackWebhookUrls"
)

// AuthCooldown is the window after any failed password check during which
// every authentication attempt is rejected, for both directions.
const AuthCooldown = 5 * time.Minute
