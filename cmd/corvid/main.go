// corvid - a UCI chess engine
//
// MIT License
//
// Copyright (c) 2026 The corvid authors. See LICENSE for details.
//

package main

import (
	"flag"
	"fmt"

	"github.com/pkg/profile"

	"github.com/dstrand/corvid/internal/config"
	"github.com/dstrand/corvid/internal/logging"
	"github.com/dstrand/corvid/internal/nnue"
	"github.com/dstrand/corvid/internal/uci"
)

const fallbackHiddenDim = 256

func main() {
	configFile := flag.String("config", config.ConfFile, "path to configuration settings file")
	nnueFile := flag.String("nnue", "", "path to NNUE network file (overrides config file setting)")
	versionInfo := flag.Bool("version", false, "prints version and exits")
	cpuProfile := flag.Bool("cpuprofile", false, "write a CPU profile for the lifetime of the process")
	flag.Parse()

	if *versionInfo {
		fmt.Println("corvid (UCI chess engine)")
		return
	}

	if *cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	config.ConfFile = *configFile
	config.Setup()
	if *nnueFile != "" {
		config.Settings.Eval.NNUEFile = *nnueFile
	}

	log := logging.GetLog()
	var net *nnue.Network
	if config.Settings.Eval.NNUEFile == "" {
		log.Warning("no NNUE network configured, using an untrained zero network")
		net = nnue.NewZeroNetwork(fallbackHiddenDim)
	} else {
		var err error
		net, err = nnue.LoadNetwork(config.Settings.Eval.NNUEFile)
		if err != nil {
			log.Fatalf("could not load NNUE network %q: %v", config.Settings.Eval.NNUEFile, err)
		}
	}

	uci.NewHandler(net).Loop()
}
