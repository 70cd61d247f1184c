package board

// StateInfo is a per-ply snapshot of the position state that cannot be recovered by simply
// looking at the board: keys, castling/en-passant/rule50 counters, check metadata and the
// captured piece. It forms a singly-linked chain back through the game, grown by DoMove and
// unwound by UndoMove. The chain is logically owned by the caller's search stack -- Position
// only ever holds the current tip, and Previous is a borrowed back-reference, never owned.
type StateInfo struct {
	Key           Key
	PawnKey       Key
	MaterialKey   Key
	MinorPieceKey Key
	NonPawnKey    [NumColors]Key

	NonPawnMaterial [NumColors]Value

	CastlingRights CastlingRight
	EPSquare       Square
	Rule50         int
	PliesFromNull  int

	CheckersBB      Bitboard
	BlockersForKing [NumColors]Bitboard
	Pinners         [NumColors]Bitboard
	CheckSquares    [NumPieceTypes]Bitboard

	CapturedPiece Piece

	// Repetition is the ply distance to a prior identical key, 0 if none. Negative when
	// that prior occurrence was itself already a repetition (non-zero Repetition), marking
	// a completed 3-fold.
	Repetition int

	Previous *StateInfo
}
