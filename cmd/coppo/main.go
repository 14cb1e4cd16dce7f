package main

import (
	"os"

	"coppo/internal/addons/build"
	"coppo/internal/addons/create"
	"coppo/internal/addons/dep"
	"coppo/internal/addons/info"
	"coppo/internal/addons/run"
	"coppo/internal/addons/toolcfg"
	"coppo/internal/cli"
	"coppo/internal/logging"
)

func newRunner() *cli.Runner {
	return cli.New().
		Register(create.New()).
		Register(build.New()).
		Register(run.New()).
		Register(info.New()).
		Register(dep.New()).
		Register(toolcfg.New())
}

func main() {
	if err := newRunner().Execute(); err != nil {
		logging.Default().Error("%v", err)
		os.Exit(1)
	}
}
