package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the standard chess starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Set parses a FEN (or Shredder-FEN/X-FEN when chess960 is true) string into the position,
// anchoring the new StateInfo chain at st (whose Previous is ignored and overwritten). The
// keys and check metadata are computed from scratch; there is no incremental path into Set.
func (p *Position) Set(fen string, chess960 bool, st *StateInfo) error {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return fmt.Errorf("invalid fen %q: need at least 4 fields", fen)
	}

	*p = Position{chess960: chess960, st: st}
	*st = StateInfo{EPSquare: NoSquare}

	if err := p.setBoard(fields[0]); err != nil {
		return fmt.Errorf("invalid fen %q: %w", fen, err)
	}
	for c := ZeroColor; c < NumColors; c++ {
		if p.Pieces(c, King).PopCount() != 1 {
			return fmt.Errorf("invalid fen %q: side %v must have exactly one king", fen, c)
		}
	}

	switch fields[1] {
	case "w":
		p.sideToMove = White
	case "b":
		p.sideToMove = Black
	default:
		return fmt.Errorf("invalid fen %q: bad side to move %q", fen, fields[1])
	}

	if err := p.setCastlingField(fields[2]); err != nil {
		return fmt.Errorf("invalid fen %q: %w", fen, err)
	}

	if fields[3] != "-" {
		sq, err := ParseSquareStr(fields[3])
		if err != nil {
			return fmt.Errorf("invalid fen %q: bad ep square %q: %w", fen, fields[3], err)
		}
		st.EPSquare = sq
	}

	if len(fields) > 4 {
		v, err := strconv.Atoi(fields[4])
		if err != nil {
			return fmt.Errorf("invalid fen %q: bad halfmove clock %q", fen, fields[4])
		}
		st.Rule50 = v
	}
	fullmove := 1
	if len(fields) > 5 {
		v, err := strconv.Atoi(fields[5])
		if err == nil && v > 0 {
			fullmove = v
		}
	}
	p.gamePly = (fullmove-1)*2 + int(p.sideToMove)

	p.validateEnPassant()
	p.computeKeys()
	p.setCheckInfo()
	st.CheckersBB = p.attackersTo(p.KingSquare(p.sideToMove), p.Occupied()) & p.byColor[p.sideToMove.Opponent()]
	return nil
}

func (p *Position) setBoard(board string) error {
	ranks := strings.Split(board, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("expected 8 ranks, got %d", len(ranks))
	}

	for i, rankStr := range ranks {
		r := Rank(7 - i)
		f := ZeroFile
		for _, c := range rankStr {
			if c >= '1' && c <= '8' {
				f += File(c - '0')
				continue
			}
			if f >= NumFiles {
				return fmt.Errorf("rank %v overflows", r)
			}
			pc, ok := ParsePiece(c)
			if !ok {
				return fmt.Errorf("invalid piece char %q", c)
			}
			p.put(pc, NewSquare(f, r))
			f++
		}
		if f != NumFiles {
			return fmt.Errorf("rank %v has wrong length", r)
		}
	}
	return nil
}

// setCastlingField parses the castling availability field, supporting the standard "KQkq"
// form, the Shredder-FEN form (rook home file letters, e.g. "HAha"), and X-FEN's "-".
func (p *Position) setCastlingField(field string) error {
	if field == "-" {
		return nil
	}
	for _, c := range field {
		var color Color
		if c >= 'a' && c <= 'z' {
			color = Black
		} else {
			color = White
		}
		king := p.KingSquare(color)
		if !p.chess960 {
			switch c {
			case 'K':
				p.setCastlingRight(White, king, H1)
			case 'Q':
				p.setCastlingRight(White, king, A1)
			case 'k':
				p.setCastlingRight(Black, king, H8)
			case 'q':
				p.setCastlingRight(Black, king, A8)
			default:
				return fmt.Errorf("invalid castling char %q", c)
			}
			continue
		}

		upper := c
		if upper >= 'a' && upper <= 'z' {
			upper -= 'a' - 'A'
		}
		rank := Rank1
		if color == Black {
			rank = Rank8
		}
		file, ok := ParseFile(upper)
		if upper == 'K' || upper == 'Q' {
			// X-FEN: the outermost own rook, scanning in from the h-file (K) or a-file (Q).
			ok = false
			for i := 0; i < int(NumFiles) && !ok; i++ {
				file = FileA + File(i)
				if upper == 'K' {
					file = FileH - File(i)
				}
				ok = p.PieceOn(NewSquare(file, rank)) == MakePiece(color, Rook)
			}
		}
		if !ok {
			return fmt.Errorf("invalid shredder castling char %q", c)
		}
		p.setCastlingRight(color, king, NewSquare(file, rank))
	}
	return nil
}

// validateEnPassant clears a parsed en passant target that could not legally have arisen
// from a double pawn push: it must lie on the side to move's sixth rank, the square in front
// of it (from the side to move's view) must hold a pawn of the opponent, it and the double
// push's origin square must be empty, and some pawn of the side to move must actually be
// able to capture onto it. X-FEN writers sometimes list an ep square
// that fails this; an unconditionally-trusted one would corrupt the key and repetition logic.
func (p *Position) validateEnPassant() {
	ep := p.st.EPSquare
	if ep == NoSquare {
		return
	}
	us := p.sideToMove
	them := us.Opponent()

	if ep.RelativeRank(us) != Rank6 {
		p.st.EPSquare = NoSquare
		return
	}

	var capturedSq Square
	if us == White {
		capturedSq = ep - 8
	} else {
		capturedSq = ep + 8
	}

	var originSq Square
	if us == White {
		originSq = ep + 8
	} else {
		originSq = ep - 8
	}

	if p.PieceOn(capturedSq) != MakePiece(them, Pawn) {
		p.st.EPSquare = NoSquare
		return
	}
	if !p.IsEmpty(ep) || !p.IsEmpty(originSq) {
		p.st.EPSquare = NoSquare
		return
	}
	if PawnAttacks(them, BitMask(ep))&p.Pieces(us, Pawn) == 0 {
		p.st.EPSquare = NoSquare
	}
}

// computeKeys derives all Zobrist keys and non-pawn material totals from scratch. Called
// only by Set; DoMove/UndoMove maintain keys incrementally thereafter.
func (p *Position) computeKeys() {
	st := p.st
	st.Key, st.PawnKey, st.MaterialKey, st.MinorPieceKey = 0, 0, 0, 0
	st.NonPawnKey = [NumColors]Key{}
	st.NonPawnMaterial = [NumColors]Value{}

	st.PawnKey = Zobrist.NoPawns()

	for sq := ZeroSquare; sq < NumSquares; sq++ {
		pc := p.PieceOn(sq)
		if pc == NoPiece {
			continue
		}
		st.Key ^= Zobrist.PSQ(pc, sq)
		switch pc.Type() {
		case Pawn:
			st.PawnKey ^= Zobrist.PSQ(pc, sq)
		default:
			st.NonPawnKey[pc.Color()] ^= Zobrist.PSQ(pc, sq)
			if pc.Type() != King {
				st.NonPawnMaterial[pc.Color()] += PieceValue[pc.Type()]
			}
			if pc.Type() == Bishop || pc.Type() == Knight {
				st.MinorPieceKey ^= Zobrist.PSQ(pc, sq)
			}
		}
	}

	if p.sideToMove == Black {
		st.Key ^= Zobrist.Side()
	}
	if st.EPSquare != NoSquare {
		st.Key ^= Zobrist.EnPassant(st.EPSquare.File())
	}
	st.Key ^= Zobrist.Castling(st.CastlingRights)

	for c := ZeroColor; c < NumColors; c++ {
		for pt := Pawn; pt <= King; pt++ {
			st.MaterialKey ^= materialKeyContribution(c, pt, p.PieceCount(MakePiece(c, pt)))
		}
	}
}

// materialKeyContribution folds the count of a given (color, type) combination into the
// material key by hashing the piece's psq key at a sequence of synthetic squares -- cheap
// way to reuse the existing Zobrist table for a configuration signature.
func materialKeyContribution(c Color, pt PieceType, count int) Key {
	pc := MakePiece(c, pt)
	var k Key
	for i := 0; i < count; i++ {
		k ^= Zobrist.PSQ(pc, Square(i))
	}
	return k
}

// Fen renders the position as a FEN string, using Shredder-FEN castling notation (rook
// home files) when the position is chess960.
func (p *Position) Fen() string {
	var sb strings.Builder

	for r := int(Rank8); r >= int(Rank1); r-- {
		empty := 0
		for f := ZeroFile; f < NumFiles; f++ {
			pc := p.PieceOn(NewSquare(f, Rank(r)))
			if pc == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(pc.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if r != int(Rank1) {
			sb.WriteRune('/')
		}
	}

	sb.WriteRune(' ')
	sb.WriteString(p.sideToMove.String())

	sb.WriteRune(' ')
	sb.WriteString(p.castlingFen())

	sb.WriteRune(' ')
	if p.st.EPSquare == NoSquare {
		sb.WriteRune('-')
	} else {
		sb.WriteString(p.st.EPSquare.String())
	}

	fmt.Fprintf(&sb, " %d %d", p.st.Rule50, p.gamePly/2+1)
	return sb.String()
}

func (p *Position) castlingFen() string {
	rights := p.st.CastlingRights
	if rights == NoCastling {
		return "-"
	}
	var sb strings.Builder
	for _, right := range []CastlingRight{WhiteOO, WhiteOOO, BlackOO, BlackOOO} {
		if !rights.IsAllowed(right) {
			continue
		}
		rookSq := p.CastlingRookSquare(right)
		if !p.chess960 {
			if right == WhiteOO || right == BlackOO {
				sb.WriteString(map[bool]string{true: "K", false: "k"}[right == WhiteOO])
			} else {
				sb.WriteString(map[bool]string{true: "Q", false: "q"}[right == WhiteOOO])
			}
			continue
		}
		file := rookSq.File().String()
		if right == WhiteOO || right == WhiteOOO {
			sb.WriteString(strings.ToUpper(file))
		} else {
			sb.WriteString(file)
		}
	}
	return sb.String()
}
