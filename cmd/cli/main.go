package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/aqidash/internal/admin"
	"github.com/dmitrijs2005/aqidash/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	if err := admin.NewRootCmd(cfg, os.Stdin, os.Stdout).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

}
