// corvid - a UCI chess engine
//
// MIT License
//
// Copyright (c) 2026 The corvid authors. See LICENSE for details.
//

package position

import (
	"fmt"
	"strconv"
	"strings"

	. "github.com/dstrand/corvid/internal/types"
)

// FenError reports a malformed FEN string. The caller (the UCI driver)
// leaves any existing position unchanged and prints the error to
// stderr, per spec.md §7.
type FenError struct {
	Fen    string
	Reason string
}

func (e *FenError) Error() string {
	return fmt.Sprintf("invalid fen %q: %s", e.Fen, e.Reason)
}

var pieceFromFenChar = map[byte]Piece{
	'P': WhitePawn, 'N': WhiteKnight, 'B': WhiteBishop, 'R': WhiteRook, 'Q': WhiteQueen, 'K': WhiteKing,
	'p': BlackPawn, 'n': BlackKnight, 'b': BlackBishop, 'r': BlackRook, 'q': BlackQueen, 'k': BlackKing,
}

// setupFromFen parses fen and populates every field of p. Validates
// the invariants from spec.md §4.D's from_fen contract: exactly one
// king per side, no pawns on the back ranks, castling rights
// consistent with where the rooks and kings actually are, and an
// en-passant square consistent with the side to move.
func (p *Position) setupFromFen(fen string) error {
	fields := strings.Fields(strings.TrimSpace(fen))
	if len(fields) < 4 {
		return &FenError{fen, "expected at least 4 space-separated fields (board, side, castling, en-passant)"}
	}

	for pc := Piece(0); pc < PieceLength; pc++ {
		p.pieceBb[pc] = BbZero
	}
	p.occupied[White] = BbZero
	p.occupied[Black] = BbZero
	p.occupiedAll = BbZero
	for sq := SqA1; sq < SqNone; sq++ {
		p.board[sq] = PieceNone
	}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return &FenError{fen, "board field must have 8 ranks separated by '/'"}
	}
	for i, rankStr := range ranks {
		rank := Rank(7 - i)
		file := FileA
		for j := 0; j < len(rankStr); j++ {
			c := rankStr[j]
			if c >= '1' && c <= '8' {
				file += File(c - '0')
				continue
			}
			pc, ok := pieceFromFenChar[c]
			if !ok {
				return &FenError{fen, fmt.Sprintf("unrecognized piece character %q", string(c))}
			}
			if file >= FileLength {
				return &FenError{fen, fmt.Sprintf("rank %d overflows 8 files", rank+1)}
			}
			sq := SquareOf(file, rank)
			p.putPieceRaw(pc, sq)
			file++
		}
		if file != FileLength {
			return &FenError{fen, fmt.Sprintf("rank %d does not sum to 8 files", rank+1)}
		}
	}

	switch fields[1] {
	case "w":
		p.sideToMove = White
	case "b":
		p.sideToMove = Black
	default:
		return &FenError{fen, fmt.Sprintf("side to move must be 'w' or 'b', got %q", fields[1])}
	}

	p.castlingRights = CastleNone
	if fields[2] != "-" {
		for i := 0; i < len(fields[2]); i++ {
			switch fields[2][i] {
			case 'K':
				p.castlingRights |= CastleWK
			case 'Q':
				p.castlingRights |= CastleWQ
			case 'k':
				p.castlingRights |= CastleBK
			case 'q':
				p.castlingRights |= CastleBQ
			default:
				return &FenError{fen, fmt.Sprintf("unrecognized castling character %q", string(fields[2][i]))}
			}
		}
	}

	p.enPassantSquare = SqNone
	if fields[3] != "-" {
		sq, err := SquareFromString(fields[3])
		if err != nil {
			return &FenError{fen, "malformed en-passant square: " + err.Error()}
		}
		expectedRank := Rank5
		if p.sideToMove == White {
			expectedRank = Rank6
		}
		if sq.RankOf() != expectedRank {
			return &FenError{fen, fmt.Sprintf("en-passant square %s inconsistent with side to move", sq)}
		}
		p.enPassantSquare = sq
	}

	p.halfmoveClock = 0
	if len(fields) >= 5 {
		if hm, err := strconv.Atoi(fields[4]); err == nil && hm >= 0 {
			p.halfmoveClock = hm
		}
	}

	if p.pieceBb[WhiteKing].PopCount() != 1 {
		return &FenError{fen, "white must have exactly one king"}
	}
	if p.pieceBb[BlackKing].PopCount() != 1 {
		return &FenError{fen, "black must have exactly one king"}
	}
	p.kingSquare[White] = p.pieceBb[WhiteKing].Lsb()
	p.kingSquare[Black] = p.pieceBb[BlackKing].Lsb()

	if (p.pieceBb[WhitePawn]|p.pieceBb[BlackPawn])&(Rank1.Bb()|Rank8.Bb()) != BbZero {
		return &FenError{fen, "pawns may not stand on rank 1 or rank 8"}
	}

	if p.castlingRights.Has(CastleWK) && (p.kingSquare[White] != SqE1 || p.board[SqH1] != WhiteRook) {
		return &FenError{fen, "white king-side castling right inconsistent with king/rook placement"}
	}
	if p.castlingRights.Has(CastleWQ) && (p.kingSquare[White] != SqE1 || p.board[SqA1] != WhiteRook) {
		return &FenError{fen, "white queen-side castling right inconsistent with king/rook placement"}
	}
	if p.castlingRights.Has(CastleBK) && (p.kingSquare[Black] != SqE8 || p.board[SqH8] != BlackRook) {
		return &FenError{fen, "black king-side castling right inconsistent with king/rook placement"}
	}
	if p.castlingRights.Has(CastleBQ) && (p.kingSquare[Black] != SqE8 || p.board[SqA8] != BlackRook) {
		return &FenError{fen, "black queen-side castling right inconsistent with king/rook placement"}
	}

	p.zobristKey = p.zobristOf()
	active := make([]int, 0, 32)
	for _, persp := range [ColorLength]Color{White, Black} {
		active = active[:0]
		kingSq := p.kingSquare[persp]
		for sq := SqA1; sq < SqNone; sq++ {
			pc := p.board[sq]
			if pc == PieceNone || pc.TypeOf() == King {
				continue
			}
			active = append(active, nnueFeatureIndex(persp, kingSq, sq, pc))
		}
		p.accum.Refresh(p.net, persp, active)
	}

	p.ComputeChecksAndPins()
	p.assertInvariants()
	return nil
}

// Fen renders the position as a standard Forsyth-Edwards string.
func (p *Position) Fen() string {
	var b strings.Builder
	for r := Rank8; ; r-- {
		empty := 0
		for f := FileA; f < FileLength; f++ {
			pc := p.board[SquareOf(f, r)]
			if pc == PieceNone {
				empty++
				continue
			}
			if empty > 0 {
				b.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			b.WriteString(pc.String())
		}
		if empty > 0 {
			b.WriteString(strconv.Itoa(empty))
		}
		if r == Rank1 {
			break
		}
		b.WriteByte('/')
	}

	b.WriteByte(' ')
	if p.sideToMove == White {
		b.WriteByte('w')
	} else {
		b.WriteByte('b')
	}

	b.WriteByte(' ')
	b.WriteString(p.castlingRights.String())

	b.WriteByte(' ')
	b.WriteString(p.enPassantSquare.String())

	fmt.Fprintf(&b, " %d %d", p.halfmoveClock, len(p.history)/2+1)
	return b.String()
}
