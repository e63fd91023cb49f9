package platform

// AppName identifies the application to notification services.
const AppName = "Stickerbook"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath, when non-empty, points to an image file the notification center
	// should display with the notification if supported by the platform.
	IconPath string
	// TimeoutMS is how long the notification stays visible. Zero uses
	// DefaultTimeoutMS.
	TimeoutMS int32
}

// DefaultTimeoutMS is the display time used when Options.TimeoutMS is zero.
const DefaultTimeoutMS = 5000

func (o Options) timeout() int32 {
	if o.TimeoutMS <= 0 {
		return DefaultTimeoutMS
	}
	return o.TimeoutMS
}
