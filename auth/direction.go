package auth

import "protectedstorage/constants"

// Direction identifies whether a transfer writes (upload) or reads
// (download) the managed file. It selects the expected password setting and
// the wording of messages.
type Direction int

const (
	Upload Direction = iota
	Download
)

func (d Direction) String() string {
	if d == Upload {
		return "upload"
	}
	return "download"
}

// PasswordKey returns the configuration key holding the expected password
// for this direction.
func (d Direction) PasswordKey() string {
	if d == Upload {
		return constants.SettingUploadPassword
	}
	return constants.SettingDownloadPassword
}
