package version

const (
	AppName     = "ourtube"
	AppFullName = "OurTube queue bot"
)
