// Copyright 2014 The go-ethereum Authors
// This file is part of go-ethereum.
//
// go-ethereum is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-ethereum is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-ethereum. If not, see <http://www.gnu.org/licenses/>.

// ethkit is a command line tool for encoding, signing and sending transactions.
package main

import (
	"fmt"
	"os"

	"github.com/sunyihoo/goethers/cmd/utils"
	"github.com/sunyihoo/goethers/internal/debug"
	"github.com/sunyihoo/goethers/internal/flags"
	"github.com/urfave/cli/v2"
)

var app = flags.NewApp("the goethers command line interface")

func init() {
	app.Flags = append([]cli.Flag{configFileFlag}, debug.Flags...)
	app.Flags = append(app.Flags, utils.NodeFlags...)
	app.Commands = []*cli.Command{
		rlpCommand,
		abiCommand,
		txCommand,
		sigCommand,
		dumpConfigCommand,
	}
	app.Before = func(ctx *cli.Context) error {
		flags.MigrateGlobalFlags(ctx)
		cfg, err := loadBaseConfig(ctx)
		if err != nil {
			return err
		}
		return debug.Setup(ctx, cfg.Log.Verbosity, cfg.Log.Format)
	}
	app.After = func(ctx *cli.Context) error {
		debug.Exit()
		return nil
	}
	flags.AutoEnvVars(app.Flags, "ETHKIT")
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
