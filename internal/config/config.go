// corvid - a UCI chess engine
//
// MIT License
//
// Copyright (c) 2026 The corvid authors. See LICENSE for details.
//

// Package config holds the globally available configuration, loaded
// once at startup from a TOML file with hard-coded defaults used for
// any field the file doesn't set (or if the file itself is missing -
// a missing config file is never fatal).
package config

import (
	"log"

	"github.com/BurntSushi/toml"
)

// ConfFile is the path to the config file, overridable from the
// command line before Setup is called.
var ConfFile = "./corvid.toml"

// Settings is the process-wide configuration, populated by Setup.
var Settings Configuration

var initialized bool

// Configuration is the root of the TOML config file.
type Configuration struct {
	Log    LogConfig
	Search SearchConfig
	Eval   EvalConfig
}

// LogConfig sets the levels of the standard and search logging
// channels in internal/logging; the UCI channel always logs at debug
// level.
type LogConfig struct {
	LogLevel       int `toml:"log_level"`
	SearchLogLevel int `toml:"search_log_level"`
}

// SearchConfig controls search-time tuning knobs that spec.md leaves
// to the implementer: TT size, null-move/LMR toggles, aspiration
// window width.
type SearchConfig struct {
	TTSizeMB        int  `toml:"tt_size_mb"`
	UseNullMove     bool `toml:"use_null_move"`
	UseLMR          bool `toml:"use_lmr"`
	AspirationDelta int  `toml:"aspiration_delta"`
	MaxDepth        int  `toml:"max_depth"`
}

// EvalConfig controls NNUE loading.
type EvalConfig struct {
	NNUEFile string `toml:"nnue_file"`
}

func defaults() Configuration {
	return Configuration{
		Log: LogConfig{LogLevel: 4, SearchLogLevel: 3},
		Search: SearchConfig{
			TTSizeMB:        64,
			UseNullMove:     true,
			UseLMR:          true,
			AspirationDelta: 25,
			MaxDepth:        64,
		},
		Eval: EvalConfig{NNUEFile: ""},
	}
}

// Setup reads ConfFile into Settings, falling back to defaults()
// wherever the file is absent or a field is unset. Idempotent.
func Setup() {
	if initialized {
		return
	}
	Settings = defaults()
	if _, err := toml.DecodeFile(ConfFile, &Settings); err != nil {
		log.Printf("config file %q not found or invalid, using defaults (%v)", ConfFile, err)
	}
	initialized = true
}
