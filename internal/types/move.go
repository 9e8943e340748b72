// corvid - a UCI chess engine
//
// MIT License
//
// Copyright (c) 2026 The corvid authors. See LICENSE for details.
//

package types

// Move is a 16 bit value: from (6 bits), to (6 bits), flags (4 bits).
// MoveNone (the zero value) is the "no move"/not-found sentinel, so a
// zero-initialized Move is always safe to compare against.
type Move uint16

const MoveNone Move = 0

// move flags, packed into bits 12-15.
const (
	MfQuiet MoveFlag = iota
	MfDoublePawnPush
	MfKingCastle
	MfQueenCastle
	MfCapture
	MfEnPassant
	_
	_
	MfPromoKnight
	MfPromoBishop
	MfPromoRook
	MfPromoQueen
	MfPromoCaptureKnight
	MfPromoCaptureBishop
	MfPromoCaptureRook
	MfPromoCaptureQueen
)

// MoveFlag encodes what kind of move a Move value represents.
type MoveFlag uint16

const (
	fromShift  = 0
	toShift    = 6
	flagShift  = 12
	squareMask = 0x3F
	flagMask   = 0xF
)

// NewMove packs a from/to/flag triple into a Move value.
func NewMove(from, to Square, flag MoveFlag) Move {
	return Move(uint16(from)<<fromShift | uint16(to)<<toShift | uint16(flag)<<flagShift)
}

func (m Move) From() Square { return Square((uint16(m) >> fromShift) & squareMask) }
func (m Move) To() Square   { return Square((uint16(m) >> toShift) & squareMask) }
func (m Move) Flag() MoveFlag {
	return MoveFlag((uint16(m) >> flagShift) & flagMask)
}

// IsCapture reports whether m captures a piece (including en passant
// and promotion-captures).
func (m Move) IsCapture() bool {
	f := m.Flag()
	return f == MfCapture || f == MfEnPassant ||
		(f >= MfPromoCaptureKnight && f <= MfPromoCaptureQueen)
}

// IsEnPassant reports whether m is an en-passant capture.
func (m Move) IsEnPassant() bool { return m.Flag() == MfEnPassant }

// IsCastle reports whether m is a king- or queen-side castle.
func (m Move) IsCastle() bool {
	f := m.Flag()
	return f == MfKingCastle || f == MfQueenCastle
}

// IsPromotion reports whether m promotes a pawn, with or without a
// capture.
func (m Move) IsPromotion() bool {
	return m.Flag() >= MfPromoKnight
}

// PromotionType returns the piece type a promotion move upgrades to,
// or PtNone if m is not a promotion.
func (m Move) PromotionType() PieceType {
	switch m.Flag() {
	case MfPromoKnight, MfPromoCaptureKnight:
		return Knight
	case MfPromoBishop, MfPromoCaptureBishop:
		return Bishop
	case MfPromoRook, MfPromoCaptureRook:
		return Rook
	case MfPromoQueen, MfPromoCaptureQueen:
		return Queen
	default:
		return PtNone
	}
}

// promoFlags lists the four promotion flags in (N, B, R, Q) order,
// optionally combined with a capture.
func promoFlags(capture bool) [4]MoveFlag {
	if capture {
		return [4]MoveFlag{MfPromoCaptureKnight, MfPromoCaptureBishop, MfPromoCaptureRook, MfPromoCaptureQueen}
	}
	return [4]MoveFlag{MfPromoKnight, MfPromoBishop, MfPromoRook, MfPromoQueen}
}

// PromoFlags is the exported form of promoFlags, used by the move
// generator to expand a pawn-to-last-rank move into four distinct
// moves.
func PromoFlags(capture bool) [4]MoveFlag { return promoFlags(capture) }

// StringUci renders m in UCI long algebraic form, e.g. "e2e4",
// "e7e8q". MoveNone renders as "0000".
func (m Move) StringUci() string {
	if m == MoveNone {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	switch m.PromotionType() {
	case Knight:
		s += "n"
	case Bishop:
		s += "b"
	case Rook:
		s += "r"
	case Queen:
		s += "q"
	}
	return s
}

func (m Move) String() string { return m.StringUci() }
