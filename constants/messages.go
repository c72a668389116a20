package constants

// Response and notification messages. The deployed client surfaces the
// response bodies verbatim to the operator, so these strings are part of
// the compatibility surface and must not be reworded.
const (
	MsgNoAuthHeader    = "No Authorization header specified."
	MsgSettingNotFound = "Setting '%s' not found."
	MsgPleaseWait      = "Please wait %d seconds."
	MsgInvalidPassword = "Invalid %s password."
	MsgFileNotFound    = "File not found."
	MsgInternalError   = "Internal server error."
)

// Notification texts dispatched to the configured webhooks.
const (
	NotifInvalidPassword = "An invalid %s password has been submitted."
	NotifFileUpdated     = "File has been updated."
	NotifServingFile     = "Serving file..."
)
