package handlers

import (
	"webperf/internal/startup"
)

type Handlers struct {
	performance startup.Performance
	etagMode    string
}

func New(config *startup.Config) *Handlers {
	return &Handlers{
		performance: config.Performance,
		etagMode:    config.ETagMode,
	}
}
