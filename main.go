package main

import (
	"os"

	"github.com/sundial-labs/ccs/cmd"
	ccserrors "github.com/sundial-labs/ccs/internal/errors"
	"github.com/sundial-labs/ccs/internal/logging"
)

func main() {
	if err := cmd.Execute(); err != nil {
		logging.UserError("%v", err)
		os.Exit(ccserrors.GetExitCode(err))
	}
}
