package board

// materialKeyAfterRemove returns the materialKey toggle for pc having just had one instance
// removed from the board (PieceCount(pc) already reflects the decremented count).
func (p *Position) materialKeyAfterRemove(pc Piece) Key {
	return Zobrist.PSQ(pc, Square(p.PieceCount(pc)))
}

// materialKeyAfterAdd returns the materialKey toggle for pc having just had one instance
// added to the board (PieceCount(pc) already reflects the incremented count).
func (p *Position) materialKeyAfterAdd(pc Piece) Key {
	return Zobrist.PSQ(pc, Square(p.PieceCount(pc)-1))
}

func isDoublePush(from, to Square, us Color) bool {
	if us == White {
		return to == from+16
	}
	return to+16 == from
}

func singlePush(from Square, us Color) Square {
	if us == White {
		return from + 8
	}
	return from - 8
}

// epCaptureIsPossible decides whether a double push to pushedTo (landing the pawn that can be
// captured en passant on epSq) should actually set the en-passant square: at least one of the
// capturer's pawns adjacent to epSq must be able to take without exposing its own king, the
// same check Legal applies to the EnPassant move itself (legality.go). Testing this at
// do_move time rather than deferring to Legal matters because epSq/the en-passant Zobrist key
// are directly observable state, not just an input to move generation.
func (p *Position) epCaptureIsPossible(epSq, pushedTo Square, capturer Color) bool {
	attackers := PawnAttacks(capturer.Opponent(), BitMask(epSq)) & p.Pieces(capturer, Pawn)
	if attackers == 0 {
		return false
	}

	king := p.KingSquare(capturer)
	occ := p.Occupied()

	for b := attackers; b != 0; {
		from := b.PopLSB()
		simOcc := occ &^ BitMask(from) &^ BitMask(pushedTo) | BitMask(epSq)
		if p.attackersTo(king, simOcc)&p.byColor[capturer.Opponent()]&simOcc == 0 {
			return true
		}
	}
	return false
}

// DoMove plays m, which must already be both PseudoLegal and Legal, pushing newSt onto the
// StateInfo chain as the new tip. givesCheck must be the result of GivesCheck(m) computed
// against the position *before* this call. Returns the DirtyPiece delta for callers (e.g. an
// incremental evaluator) that need to know exactly what moved/vanished/appeared.
func (p *Position) DoMove(m Move, newSt *StateInfo, givesCheck bool) DirtyPiece {
	us := p.sideToMove
	them := us.Opponent()
	prev := p.st

	*newSt = *prev
	newSt.Previous = prev
	newSt.PliesFromNull++
	p.st = newSt
	p.gamePly++

	from, to := m.From(), m.To()
	pc := p.PieceOn(from)
	captured := p.PieceOn(to)
	if m.Kind() == EnPassant {
		captured = MakePiece(them, Pawn)
	}

	newSt.Rule50++
	if pc.Type() == Pawn || captured != NoPiece {
		newSt.Rule50 = 0
	}

	var dp DirtyPiece
	dp.Piece = pc
	dp.From = from
	dp.To = to
	dp.RemovedSquare = NoSquare
	dp.AddedSquare = NoSquare

	if newSt.EPSquare != NoSquare {
		newSt.Key ^= Zobrist.EnPassant(newSt.EPSquare.File())
		newSt.EPSquare = NoSquare
	}

	lostRights := p.castlingRightsLost(from, to)
	if m.Kind() == Castling {
		lostRights |= KingSide(us) | QueenSide(us)
	}
	if lostRights&newSt.CastlingRights != 0 {
		newSt.Key ^= Zobrist.Castling(newSt.CastlingRights)
		newSt.CastlingRights &^= lostRights
		newSt.Key ^= Zobrist.Castling(newSt.CastlingRights)
	}

	switch m.Kind() {
	case Castling:
		right := rightFromCastlingMove(us, from, to)
		rookFrom := to
		kingTo := castlingKingTo(us, right)
		rookTo := castlingRookTo(us, right)

		p.remove(pc, from)
		p.remove(MakePiece(us, Rook), rookFrom)
		p.put(pc, kingTo)
		p.put(MakePiece(us, Rook), rookTo)

		newSt.Key ^= Zobrist.PSQ(pc, from) ^ Zobrist.PSQ(pc, kingTo)
		newSt.Key ^= Zobrist.PSQ(MakePiece(us, Rook), rookFrom) ^ Zobrist.PSQ(MakePiece(us, Rook), rookTo)
		newSt.NonPawnKey[us] ^= Zobrist.PSQ(MakePiece(us, Rook), rookFrom) ^ Zobrist.PSQ(MakePiece(us, Rook), rookTo)
		newSt.NonPawnKey[us] ^= Zobrist.PSQ(pc, from) ^ Zobrist.PSQ(pc, kingTo)

		newSt.CapturedPiece = NoPiece
		dp.To = kingTo
		dp.RemovedPiece = MakePiece(us, Rook)
		dp.RemovedSquare = rookFrom
		dp.AddedPiece = MakePiece(us, Rook)
		dp.AddedSquare = rookTo

	case EnPassant:
		capSq := to - 8
		if us == Black {
			capSq = to + 8
		}
		p.remove(captured, capSq)
		newSt.MaterialKey ^= p.materialKeyAfterRemove(captured)
		p.movePiece(pc, from, to)

		newSt.Key ^= Zobrist.PSQ(pc, from) ^ Zobrist.PSQ(pc, to) ^ Zobrist.PSQ(captured, capSq)
		newSt.PawnKey ^= Zobrist.PSQ(pc, from) ^ Zobrist.PSQ(pc, to) ^ Zobrist.PSQ(captured, capSq)

		newSt.CapturedPiece = captured
		dp.RemovedPiece = captured
		dp.RemovedSquare = capSq

	case Promotion:
		promoted := MakePiece(us, m.PromotionType())
		if captured != NoPiece {
			p.remove(captured, to)
			newSt.MaterialKey ^= p.materialKeyAfterRemove(captured)
			newSt.Key ^= Zobrist.PSQ(captured, to)
			if captured.Type() != King {
				newSt.NonPawnMaterial[them] -= PieceValue[captured.Type()]
			}
			newSt.NonPawnKey[them] ^= Zobrist.PSQ(captured, to)
			if captured.Type() == Bishop || captured.Type() == Knight {
				newSt.MinorPieceKey ^= Zobrist.PSQ(captured, to)
			}
			dp.RemovedPiece = captured
			dp.RemovedSquare = to
		}
		p.remove(pc, from)
		newSt.MaterialKey ^= p.materialKeyAfterRemove(pc)
		p.put(promoted, to)
		newSt.MaterialKey ^= p.materialKeyAfterAdd(promoted)

		newSt.Key ^= Zobrist.PSQ(pc, from) ^ Zobrist.PSQ(promoted, to)
		newSt.PawnKey ^= Zobrist.PSQ(pc, from)
		newSt.NonPawnKey[us] ^= Zobrist.PSQ(promoted, to)
		newSt.NonPawnMaterial[us] += PieceValue[m.PromotionType()]
		if promoted.Type() == Bishop || promoted.Type() == Knight {
			newSt.MinorPieceKey ^= Zobrist.PSQ(promoted, to)
		}

		newSt.CapturedPiece = captured
		dp.To = NoSquare
		dp.AddedPiece = promoted
		dp.AddedSquare = to

	default:
		if captured != NoPiece {
			p.remove(captured, to)
			newSt.MaterialKey ^= p.materialKeyAfterRemove(captured)
			newSt.Key ^= Zobrist.PSQ(captured, to)
			switch captured.Type() {
			case Pawn:
				newSt.PawnKey ^= Zobrist.PSQ(captured, to)
			default:
				if captured.Type() != King {
					newSt.NonPawnMaterial[them] -= PieceValue[captured.Type()]
				}
				newSt.NonPawnKey[them] ^= Zobrist.PSQ(captured, to)
				if captured.Type() == Bishop || captured.Type() == Knight {
					newSt.MinorPieceKey ^= Zobrist.PSQ(captured, to)
				}
			}
			dp.RemovedPiece = captured
			dp.RemovedSquare = to
		}

		p.movePiece(pc, from, to)
		newSt.Key ^= Zobrist.PSQ(pc, from) ^ Zobrist.PSQ(pc, to)
		switch pc.Type() {
		case Pawn:
			newSt.PawnKey ^= Zobrist.PSQ(pc, from) ^ Zobrist.PSQ(pc, to)
			if isDoublePush(from, to, us) {
				epSq := singlePush(from, us)
				if p.epCaptureIsPossible(epSq, to, them) {
					newSt.EPSquare = epSq
					newSt.Key ^= Zobrist.EnPassant(epSq.File())
				}
			}
		default:
			newSt.NonPawnKey[us] ^= Zobrist.PSQ(pc, from) ^ Zobrist.PSQ(pc, to)
			if pc.Type() == Bishop || pc.Type() == Knight {
				newSt.MinorPieceKey ^= Zobrist.PSQ(pc, from) ^ Zobrist.PSQ(pc, to)
			}
		}
		newSt.CapturedPiece = captured
	}

	newSt.Key ^= Zobrist.Side()
	p.sideToMove = them

	if givesCheck {
		newSt.CheckersBB = p.attackersTo(p.KingSquare(them), p.Occupied()) & p.byColor[us]
	} else {
		newSt.CheckersBB = EmptyBitboard
	}

	p.setCheckInfo()
	p.updateRepetition()

	return dp
}

// UndoMove reverses the most recent DoMove. It does not (and per the package contract,
// cannot) validate that m matches the move that was actually played; the caller's stack
// discipline is what guarantees that.
func (p *Position) UndoMove(m Move) {
	p.sideToMove = p.sideToMove.Opponent()
	us := p.sideToMove

	from, to := m.From(), m.To()

	switch m.Kind() {
	case Castling:
		right := rightFromCastlingMove(us, from, to)
		rookFrom := to
		kingTo := castlingKingTo(us, right)
		rookTo := castlingRookTo(us, right)

		king := MakePiece(us, King)
		rook := MakePiece(us, Rook)
		p.remove(king, kingTo)
		p.remove(rook, rookTo)
		p.put(king, from)
		p.put(rook, rookFrom)

	case EnPassant:
		pc := MakePiece(us, Pawn)
		capSq := to - 8
		if us == Black {
			capSq = to + 8
		}
		p.movePiece(pc, to, from)
		p.put(p.st.CapturedPiece, capSq)

	case Promotion:
		promoted := p.PieceOn(to)
		p.remove(promoted, to)
		p.put(MakePiece(us, Pawn), from)
		if p.st.CapturedPiece != NoPiece {
			p.put(p.st.CapturedPiece, to)
		}

	default:
		pc := p.PieceOn(to)
		p.movePiece(pc, to, from)
		if p.st.CapturedPiece != NoPiece {
			p.put(p.st.CapturedPiece, to)
		}
	}

	p.gamePly--
	p.st = p.st.Previous
}

// DoNullMove plays a null move: no piece moves, but side to move, en passant rights and
// the key flip exactly as if a pass were a legal move. Used by null-move pruning in a
// search that sits on top of this package.
func (p *Position) DoNullMove(newSt *StateInfo) {
	prev := p.st
	*newSt = *prev
	newSt.Previous = prev
	newSt.PliesFromNull = 0
	newSt.Rule50++

	if newSt.EPSquare != NoSquare {
		newSt.Key ^= Zobrist.EnPassant(newSt.EPSquare.File())
		newSt.EPSquare = NoSquare
	}
	newSt.Key ^= Zobrist.Side()
	newSt.CapturedPiece = NoPiece
	newSt.CheckersBB = EmptyBitboard

	p.st = newSt
	p.sideToMove = p.sideToMove.Opponent()
	p.gamePly++

	p.setCheckInfo()
	newSt.Repetition = 0
}

// UndoNullMove reverses the most recent DoNullMove.
func (p *Position) UndoNullMove() {
	p.st = p.st.Previous
	p.sideToMove = p.sideToMove.Opponent()
	p.gamePly--
}

// updateRepetition recomputes st.Repetition by walking back through the StateInfo chain
// at most min(Rule50, PliesFromNull) plies, i.e. no further than the last move that reset
// the 50-move counter or the last null move, looking for an earlier occurrence of the same key.
func (p *Position) updateRepetition() {
	st := p.st
	st.Repetition = 0

	end := st.Rule50
	if st.PliesFromNull < end {
		end = st.PliesFromNull
	}
	if end < 4 {
		return
	}

	if st.Previous == nil {
		return
	}
	walk := st.Previous.Previous

	for i := 4; i <= end; i += 2 {
		if walk == nil {
			return
		}
		walk = walk.Previous
		if walk == nil {
			return
		}
		walk = walk.Previous
		if walk == nil {
			return
		}
		if walk.Key == st.Key {
			if walk.Repetition != 0 {
				st.Repetition = -i
			} else {
				st.Repetition = i
			}
			return
		}
	}
}
