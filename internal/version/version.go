package version

const (
	AppName     = "server-herald"
	AppFullName = "Server Herald"
)
