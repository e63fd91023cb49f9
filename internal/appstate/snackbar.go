package appstate

import "time"

// noticeDuration is how long a snackbar message stays up.
const noticeDuration = 3 * time.Second

type snackbar struct {
	message string
	until   time.Time
	now     func() time.Time
}

func (s *snackbar) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

// Notice shows msg, replacing any current message.
func (s *snackbar) Notice(msg string) {
	s.message = msg
	s.until = s.clock().Add(noticeDuration)
}

func (s *snackbar) visible() bool {
	return s.message != "" && s.clock().Before(s.until)
}

// text returns the current message or "" once it expired.
func (s *snackbar) text() string {
	if !s.visible() {
		return ""
	}
	return s.message
}

func (s *snackbar) dismiss() { s.until = time.Time{} }
