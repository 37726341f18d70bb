package cmd

import (
	"time"

	"github.com/aviation-iia/run-endpoint/internal/config"
)

var svcEnvMapString = map[*string]boundEnvVar[string]{
	&config.Service.Path: {
		Name:        "service-path",
		Description: "The path the dispatch endpoint is served on",
	},
	&config.Service.Addr: {
		Name:        "service-addr",
		Description: "The address to listen on",
	},
	&config.Service.Port: {
		Name:        "service-port",
		Description: "The port to listen on",
	},
}

var svcEnvMapDuration = map[*time.Duration]boundEnvVar[time.Duration]{
	&config.Service.Timeout: {
		Name:        "service-timeout",
		Description: "The service IO timeout",
	},
}
