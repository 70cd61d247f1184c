package board

import "fmt"

// MoveKind distinguishes the four move encodings a Move can carry. 2 bits.
type MoveKind uint8

const (
	Normal MoveKind = iota
	Promotion
	EnPassant
	Castling
)

// Move is a 16-bit packed move: to-square (6 bits), from-square (6 bits), kind (2 bits)
// and promotion piece type (2 bits, meaningful only for Promotion). Castling is encoded
// as "king captures own rook": From is the king's square, To is the castling rook's square.
type Move uint16

const (
	// MoveNone is the zero value, meaning "no move".
	MoveNone Move = 0
	// MoveNull is a sentinel distinct from MoveNone used by search stacks to mark a null move.
	MoveNull Move = 65
)

const (
	toMask    = 0x3f
	fromShift = 6
	fromMask  = 0x3f << fromShift
	kindShift = 12
	kindMask  = 0x3 << kindShift
	promoShift = 14
	promoMask  = 0x3 << promoShift
)

// NewMove returns a Normal move.
func NewMove(from, to Square) Move {
	return Move(to) | Move(from)<<fromShift
}

// NewPromotionMove returns a Promotion move. pt must be one of Knight, Bishop, Rook, Queen.
func NewPromotionMove(from, to Square, pt PieceType) Move {
	return Move(to) | Move(from)<<fromShift | Move(Promotion)<<kindShift | promoCode(pt)<<promoShift
}

// NewEnPassantMove returns an EnPassant move.
func NewEnPassantMove(from, to Square) Move {
	return Move(to) | Move(from)<<fromShift | Move(EnPassant)<<kindShift
}

// NewCastlingMove returns a Castling move: from is the king square, rookFrom the castling
// rook's square (encoded as "king captures own rook").
func NewCastlingMove(kingFrom, rookFrom Square) Move {
	return Move(rookFrom) | Move(kingFrom)<<fromShift | Move(Castling)<<kindShift
}

func promoCode(pt PieceType) Move {
	return Move(pt - Knight)
}

func promoType(code Move) PieceType {
	return Knight + PieceType(code)
}

func (m Move) From() Square {
	return Square((m & fromMask) >> fromShift)
}

func (m Move) To() Square {
	return Square(m & toMask)
}

func (m Move) Kind() MoveKind {
	return MoveKind((m & kindMask) >> kindShift)
}

// PromotionType returns the promotion piece type. Only meaningful if Kind() == Promotion.
func (m Move) PromotionType() PieceType {
	return promoType((m & promoMask) >> promoShift)
}

func (m Move) IsValid() bool {
	return m != MoveNone && m != MoveNull
}

// ParseMove parses a move in pure algebraic coordinate notation, such as "a2a4" or "a7a8q".
// The parsed move carries no contextual metadata (castling/en passant): it is always a
// Normal or Promotion move, and the caller must re-encode castling and en passant moves
// against a Position itself (Position.PseudoLegal only validates a move as encoded).
func ParseMove(str string) (Move, error) {
	runes := []rune(str)

	if len(runes) < 4 || len(runes) > 5 {
		return MoveNone, fmt.Errorf("invalid move: '%v'", str)
	}

	from, err := ParseSquare(runes[0], runes[1])
	if err != nil {
		return MoveNone, fmt.Errorf("invalid from: '%v': %v", str, err)
	}
	to, err := ParseSquare(runes[2], runes[3])
	if err != nil {
		return MoveNone, fmt.Errorf("invalid to: '%v': %v", str, err)
	}

	if len(runes) == 5 {
		promo, ok := parsePieceType(runes[4])
		if !ok || promo == Pawn || promo == King {
			return MoveNone, fmt.Errorf("invalid promotion: '%v'", str)
		}
		return NewPromotionMove(from, to, promo), nil
	}

	return NewMove(from, to), nil
}

func (m Move) String() string {
	if m == MoveNone {
		return "0000"
	}
	if m.Kind() == Promotion {
		return fmt.Sprintf("%v%v%v", m.From(), m.To(), m.PromotionType())
	}
	return fmt.Sprintf("%v%v", m.From(), m.To())
}

// DirtyPiece is the minimal description of the board delta produced by a move, consumed
// by external incremental evaluators.
type DirtyPiece struct {
	Piece    Piece
	From, To Square // To == NoSquare iff the moved piece vanished (promotion consumes the pawn)

	RemovedPiece  Piece
	RemovedSquare Square // NoSquare iff no removal

	AddedPiece  Piece
	AddedSquare Square // NoSquare iff no addition
}
