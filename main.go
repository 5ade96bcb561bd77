package main

import (
	"webperf/internal/cli"
	"webperf/internal/startup"
)

func main() {
	if err := cli.Execute(); err != nil {
		startup.LogFatal("%v", err)
	}
}
