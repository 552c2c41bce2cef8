// Copyright 2017 The go-ethereum Authors
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

package main

import (
	"bufio"
	"errors"
	"fmt"
	"math/big"
	"os"
	"reflect"
	"time"
	"unicode"

	"github.com/naoina/toml"
	"github.com/sunyihoo/goethers/cmd/utils"
	"github.com/sunyihoo/goethers/internal/flags"
	"github.com/sunyihoo/goethers/log"
	"github.com/urfave/cli/v2"
)

var (
	configFileFlag = &cli.StringFlag{
		Name:     "config",
		Usage:    "TOML configuration file",
		Category: flags.MiscCategory,
	}

	dumpConfigCommand = &cli.Command{
		Action:      dumpConfig,
		Name:        "dumpconfig",
		Usage:       "Export configuration values in a TOML format",
		ArgsUsage:   "<dumpfile (optional)>",
		Description: `Export configuration values in TOML format (to stdout by default).`,
	}
)

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		id := fmt.Sprintf("%s.%s", rt.String(), field)
		if deprecatedConfigFields[id] {
			log.Warn(fmt.Sprintf("Config field '%s' is deprecated and won't have any effect.", id))
			return nil
		}
		var link string
		if unicode.IsUpper(rune(rt.Name()[0])) && rt.PkgPath() != "main" {
			link = fmt.Sprintf(", see https://godoc.org/%s#%s for available fields", rt.PkgPath(), rt.Name())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, rt.String(), link)
	},
}

var deprecatedConfigFields = map[string]bool{
	"main.nodeConfig.IPCPath": true,
}

// nodeConfig selects the JSON-RPC node.
type nodeConfig struct {
	RPC       string        `toml:",omitempty"`
	JWTSecret string        `toml:",omitempty"` // path of the hex encoded secret
	Timeout   time.Duration // nanoseconds
	ChainID   uint64        `toml:",omitempty"` // for offline signing, 0 means none
}

// signerConfig holds the signing account settings.
type signerConfig struct {
	KeyFile string `toml:",omitempty"`
	TxType  string `toml:",omitempty"` // legacy, accesslist or eip1559, inferred if empty
}

// logConfig holds the logging settings.
type logConfig struct {
	Verbosity int
	Format    string `toml:",omitempty"`
}

type ethkitConfig struct {
	Node   nodeConfig
	Signer signerConfig
	Log    logConfig
}

var defaultConfig = ethkitConfig{
	Node: nodeConfig{Timeout: 30 * time.Second},
	Log:  logConfig{Verbosity: 3},
}

func loadConfig(file string, cfg *ethkitConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// loadBaseConfig loads the ethkitConfig based on the given command line
// parameters and config file.
func loadBaseConfig(ctx *cli.Context) (ethkitConfig, error) {
	// Load defaults
	cfg := defaultConfig

	// Load config file.
	if file := ctx.String(configFileFlag.Name); file != "" {
		if err := loadConfig(flags.ExpandPath(file), &cfg); err != nil {
			return cfg, err
		}
	}

	// Apply flags.
	applyNodeFlags(ctx, &cfg.Node)
	return cfg, nil
}

// applyNodeFlags overrides the node settings given on the command line.
func applyNodeFlags(ctx *cli.Context, cfg *nodeConfig) {
	if ctx.IsSet(utils.RPCFlag.Name) {
		cfg.RPC = ctx.String(utils.RPCFlag.Name)
	}
	if ctx.IsSet(utils.JWTSecretFlag.Name) {
		cfg.JWTSecret = ctx.String(utils.JWTSecretFlag.Name)
	}
	if ctx.IsSet(utils.RPCTimeoutFlag.Name) {
		cfg.Timeout = ctx.Duration(utils.RPCTimeoutFlag.Name)
	}
	if id := flags.GlobalBig(ctx, utils.ChainIDFlag.Name); id != nil && id.IsUint64() {
		cfg.ChainID = id.Uint64()
	}
}

// chainID returns the configured chain id, or nil when none is set.
func (c *nodeConfig) chainID() *big.Int {
	if c.ChainID == 0 {
		return nil
	}
	return new(big.Int).SetUint64(c.ChainID)
}

// dumpConfig is the dumpconfig command.
func dumpConfig(ctx *cli.Context) error {
	cfg, err := loadBaseConfig(ctx)
	if err != nil {
		return err
	}
	comment := ""

	out, err := tomlSettings.Marshal(&cfg)
	if err != nil {
		return err
	}

	dump := ctx.App.Writer
	if ctx.NArg() > 0 {
		f, err := os.OpenFile(ctx.Args().Get(0), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		dump = f
	}
	if cfg.Signer.KeyFile != "" {
		comment += "# Key file paths are expanded, ~ refers to the home directory.\n\n"
	}
	fmt.Fprint(dump, comment)
	dump.Write(out)

	return nil
}
