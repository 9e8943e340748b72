// corvid - a UCI chess engine
//
// MIT License
//
// Copyright (c) 2026 The corvid authors. See LICENSE for details.
//

// Package logging is a thin wrapper over github.com/op/go-logging that
// gives every other package a one-line way to get a leveled, formatted
// logger without repeating backend/formatter setup. There are three
// independent channels: the standard engine log, the search trace log
// (usually kept quieter - it is on the hot path) and the UCI protocol
// transcript log.
package logging

import (
	"log"
	"os"

	"github.com/op/go-logging"

	"github.com/dstrand/corvid/internal/config"
)

var (
	standardLog *logging.Logger
	searchLog   *logging.Logger
	uciLog      *logging.Logger

	stdFormat = logging.MustStringFormatter(
		`%{time:15:04:05.000} %{shortpkg:-10.10s}:%{shortfile:-14.14s} %{level:-7.7s}:  %{message}`)
	uciFormat = logging.MustStringFormatter(`%{time:15:04:05.000} UCI %{message}`)
)

func init() {
	standardLog = logging.MustGetLogger("standard")
	searchLog = logging.MustGetLogger("search")
	uciLog = logging.MustGetLogger("uci")
}

// GetLog returns the standard engine logger, leveled from config.LogLevel.
func GetLog() *logging.Logger {
	backend := logging.AddModuleLevel(logging.NewBackendFormatter(
		logging.NewLogBackend(os.Stdout, "", log.Lmsgprefix), stdFormat))
	backend.SetLevel(logging.Level(config.Settings.Log.LogLevel), "")
	standardLog.SetBackend(backend)
	return standardLog
}

// GetSearchLog returns the search trace logger, leveled from
// config.SearchLogLevel.
func GetSearchLog() *logging.Logger {
	backend := logging.AddModuleLevel(logging.NewBackendFormatter(
		logging.NewLogBackend(os.Stdout, "", log.Lmsgprefix), stdFormat))
	backend.SetLevel(logging.Level(config.Settings.Log.SearchLogLevel), "")
	searchLog.SetBackend(backend)
	return searchLog
}

// GetUciLog returns the UCI protocol transcript logger. It always logs
// at debug level - every line in, every line out - since it exists
// specifically to let a GUI bug report be reproduced offline.
func GetUciLog() *logging.Logger {
	backend := logging.AddModuleLevel(logging.NewBackendFormatter(
		logging.NewLogBackend(os.Stdout, "", log.Lmsgprefix), uciFormat))
	backend.SetLevel(logging.DEBUG, "")
	uciLog.SetBackend(backend)
	return uciLog
}
