// corvid - a UCI chess engine
//
// MIT License
//
// Copyright (c) 2026 The corvid authors. See LICENSE for details.
//

package uci

import (
	"strconv"
	"strings"

	"github.com/dstrand/corvid/internal/config"
)

func init() {
	uciOptions = map[string]*uciOption{
		"Clear Hash": {NameID: "Clear Hash", HandlerFunc: clearCache, OptionType: Button},
		"Hash": {NameID: "Hash", HandlerFunc: cacheSize, OptionType: Spin,
			DefaultValue: strconv.Itoa(config.Settings.Search.TTSizeMB),
			CurrentValue: strconv.Itoa(config.Settings.Search.TTSizeMB),
			MinValue:     "1", MaxValue: "65000"},
		"Use_NullMove": {NameID: "Use_NullMove", HandlerFunc: useNullMove, OptionType: Check,
			DefaultValue: strconv.FormatBool(config.Settings.Search.UseNullMove),
			CurrentValue: strconv.FormatBool(config.Settings.Search.UseNullMove)},
		"Use_Lmr": {NameID: "Use_Lmr", HandlerFunc: useLmr, OptionType: Check,
			DefaultValue: strconv.FormatBool(config.Settings.Search.UseLMR),
			CurrentValue: strconv.FormatBool(config.Settings.Search.UseLMR)},
		"Aspiration_Delta": {NameID: "Aspiration_Delta", HandlerFunc: aspirationDelta, OptionType: Spin,
			DefaultValue: strconv.Itoa(config.Settings.Search.AspirationDelta),
			CurrentValue: strconv.Itoa(config.Settings.Search.AspirationDelta),
			MinValue:     "0", MaxValue: "500"},
	}
	sortOrderUciOptions = []string{
		"Clear Hash",
		"Hash",
		"Use_NullMove",
		"Use_Lmr",
		"Aspiration_Delta",
	}
}

// optionStrings renders every registered option in UCI option-line
// form, in display order, for the "uci" handshake.
func optionStrings() []string {
	opts := make([]string, 0, len(sortOrderUciOptions))
	for _, name := range sortOrderUciOptions {
		opts = append(opts, uciOptions[name].String())
	}
	return opts
}

// String renders a uciOption the way the UCI protocol expects during
// the "uci" handshake: "option name X type check default Y" and so on.
func (o *uciOption) String() string {
	var b strings.Builder
	b.WriteString("option name ")
	b.WriteString(o.NameID)
	b.WriteString(" type ")
	switch o.OptionType {
	case optCheck:
		b.WriteString("check default ")
		b.WriteString(o.DefaultValue)
	case optSpin:
		b.WriteString("spin default ")
		b.WriteString(o.DefaultValue)
		b.WriteString(" min ")
		b.WriteString(o.MinValue)
		b.WriteString(" max ")
		b.WriteString(o.MaxValue)
	case optCombo:
		b.WriteString("combo default ")
		b.WriteString(o.DefaultValue)
		b.WriteString(" var ")
		b.WriteString(o.VarValue)
	case optButton:
		b.WriteString("button")
	case optString:
		b.WriteString("string default ")
		b.WriteString(o.DefaultValue)
	}
	return b.String()
}

type uciOptionType int

const (
	optCheck uciOptionType = iota
	optSpin
	optCombo
	optButton
	optString
)

// Check, Spin, Combo, Button and String are exported aliases kept for
// readability at each option's definition site above.
const (
	Check  = optCheck
	Spin   = optSpin
	Combo  = optCombo
	Button = optButton
	String = optString
)

// optionHandler is called from setOptionCommand once CurrentValue has
// been updated from the "setoption" command.
type optionHandler func(*Handler, *uciOption)

// uciOption mirrors a UCI protocol option: name, type, bounds and the
// handler invoked whenever a GUI changes its value.
type uciOption struct {
	NameID       string
	HandlerFunc  optionHandler
	OptionType   uciOptionType
	DefaultValue string
	MinValue     string
	MaxValue     string
	VarValue     string
	CurrentValue string
}

var uciOptions map[string]*uciOption
var sortOrderUciOptions []string

func clearCache(h *Handler, _ *uciOption) {
	h.mySearch.ClearHash()
	h.SendInfoString("Hash cleared")
}

func cacheSize(h *Handler, o *uciOption) {
	v, err := strconv.Atoi(o.CurrentValue)
	if err != nil {
		return
	}
	config.Settings.Search.TTSizeMB = v
	h.mySearch.ResizeCache()
	h.SendInfoString("Hash resized")
}

func useNullMove(_ *Handler, o *uciOption) {
	v, err := strconv.ParseBool(o.CurrentValue)
	if err != nil {
		return
	}
	config.Settings.Search.UseNullMove = v
}

func useLmr(_ *Handler, o *uciOption) {
	v, err := strconv.ParseBool(o.CurrentValue)
	if err != nil {
		return
	}
	config.Settings.Search.UseLMR = v
}

func aspirationDelta(_ *Handler, o *uciOption) {
	v, err := strconv.Atoi(o.CurrentValue)
	if err != nil {
		return
	}
	config.Settings.Search.AspirationDelta = v
}
