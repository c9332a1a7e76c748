package app

// WorkingTreeChangedMsg is sent when a file under review changed on disk
// after the views were built
type WorkingTreeChangedMsg struct{}

// clearNoticeMsg drops a transient status message
type clearNoticeMsg struct {
	seq int
}
