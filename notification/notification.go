package notification

import "log"

// ShowBlockingError surfaces a fatal startup problem in a modal dialog and
// returns once the user dismisses it. On platforms without a native dialog
// the message only goes to the log.
func ShowBlockingError(title, message string) {
	log.Printf("FATAL: %s: %s", title, message)
	showBlockingError(title, message)
}
