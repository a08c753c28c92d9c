package ws

const (
	// server - client
	MsgReady = "ready"
	MsgTasks = "tasks"
	MsgError = "error"
)
