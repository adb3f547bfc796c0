// Package platform sends desktop notifications through whatever the host OS
// offers.
package platform

// AppName is the sender shown by notification centres.
const AppName = "huepad"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath, when non-empty, points to an image file shown with the
	// notification where supported.
	IconPath string
	// Timeout in milliseconds; zero picks the platform default.
	Timeout int32
}
