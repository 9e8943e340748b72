// corvid - a UCI chess engine
//
// MIT License
//
// Copyright (c) 2026 The corvid authors. See LICENSE for details.
//

package types

// PieceType is a piece kind without color: Pawn, Knight, Bishop, Rook,
// Queen or King.
type PieceType uint8

const (
	PtNone PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
	PieceTypeLength = 7
)

var pieceTypeLabels = [PieceTypeLength]string{"", "p", "n", "b", "r", "q", "k"}

func (pt PieceType) String() string {
	return pieceTypeLabels[pt]
}

// Value is a search/eval score in centipawns (or mate-distance units
// near the mate bound). It is a plain signed int wide enough to hold
// mate scores without overflowing on negation.
type Value int32

const (
	ValueZero   Value = 0
	ValueDraw   Value = 0
	ValueInf    Value = 20000
	ValueMate   Value = 19000
	ValueMateIn Value = ValueMate - 1000 // |score| above this is "mate in N"
	ValueNone   Value = ValueInf + 1
)

// PieceValue is the static material value of each piece type, used by
// MVV-LVA ordering and SEE; NNUE supplies the actual evaluation.
var PieceValue = [PieceTypeLength]Value{0, 100, 320, 330, 500, 900, 20000}

// Piece is a colored piece: White/Black combined with a PieceType.
type Piece uint8

const (
	PieceNone   Piece = 0
	WhitePawn   Piece = 1
	WhiteKnight Piece = 2
	WhiteBishop Piece = 3
	WhiteRook   Piece = 4
	WhiteQueen  Piece = 5
	WhiteKing   Piece = 6
	BlackPawn   Piece = 9
	BlackKnight Piece = 10
	BlackBishop Piece = 11
	BlackRook   Piece = 12
	BlackQueen  Piece = 13
	BlackKing   Piece = 14
	PieceLength       = 16
)

// MakePiece builds a colored piece from a color and a piece type.
func MakePiece(c Color, pt PieceType) Piece {
	if c == White {
		return Piece(pt)
	}
	return Piece(8 + pt)
}

// TypeOf returns the piece type of p, ignoring color.
func (p Piece) TypeOf() PieceType {
	if p >= BlackPawn {
		return PieceType(p - 8)
	}
	return PieceType(p)
}

// ColorOf returns the color of p. Only valid for p != PieceNone.
func (p Piece) ColorOf() Color {
	if p >= BlackPawn {
		return Black
	}
	return White
}

func (p Piece) String() string {
	if p == PieceNone {
		return "-"
	}
	s := p.TypeOf().String()
	if p.ColorOf() == White {
		return upper(s)
	}
	return s
}

func upper(s string) string {
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
