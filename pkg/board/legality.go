package board

// PseudoLegal reports whether m could be played by the side to move ignoring whether it
// leaves that side's own king in check -- board content, occupancy and piece movement
// patterns only. Callers holding a move that did not come from GenerateMoves (e.g. one
// replayed off the wire or read from the transposition table) use this as the sanity gate
// before handing the move to Legal.
func (p *Position) PseudoLegal(m Move) bool {
	us := p.sideToMove
	from, to := m.From(), m.To()
	pc := p.PieceOn(from)

	if pc == NoPiece || pc.Color() != us {
		return false
	}
	if p.PieceOn(to) != NoPiece && p.PieceOn(to).Color() == us && m.Kind() != Castling {
		return false
	}

	switch m.Kind() {
	case Castling:
		return p.pseudoLegalCastling(m)
	case EnPassant:
		ep, ok := p.EnPassant()
		return pc.Type() == Pawn && ok && to == ep && PawnAttacks(us, BitMask(from)).IsSet(to)
	case Promotion:
		if pc.Type() != Pawn || !PromotionRank(us).IsSet(to) {
			return false
		}
		return p.pseudoLegalPawnMove(from, to, us)
	default:
		if pc.Type() == Pawn {
			if PromotionRank(us).IsSet(to) {
				return false
			}
			return p.pseudoLegalPawnMove(from, to, us)
		}
		return Attacks(pc.Type(), from, p.Occupied()).IsSet(to)
	}
}

func (p *Position) pseudoLegalPawnMove(from, to Square, us Color) bool {
	occ := p.Occupied()
	if PawnAttacks(us, BitMask(from)).IsSet(to) {
		return p.PieceOn(to) != NoPiece && p.PieceOn(to).Color() != us
	}
	single := from
	if us == White {
		single = from + 8
	} else {
		single = from - 8
	}
	if to == single {
		return !occ.IsSet(to)
	}
	if JumpRank(us).IsSet(to) {
		return !occ.IsSet(single) && !occ.IsSet(to) && to == doublePushTarget(from, us)
	}
	return false
}

func doublePushTarget(from Square, us Color) Square {
	if us == White {
		return from + 16
	}
	return from - 16
}

func (p *Position) pseudoLegalCastling(m Move) bool {
	us := p.sideToMove
	king, rook := m.From(), m.To()
	if p.PieceOn(king) != MakePiece(us, King) || p.PieceOn(rook) != MakePiece(us, Rook) {
		return false
	}

	right := KingSide(us)
	if rook < king {
		right = QueenSide(us)
	}
	if !p.st.CastlingRights.IsAllowed(right) || p.CastlingRookSquare(right) != rook {
		return false
	}
	if p.CastlingPath(right)&p.Occupied() != 0 {
		return false
	}

	them := us.Opponent()
	kingTo := castlingKingTo(us, right)
	step := 1
	if kingTo < king {
		step = -1
	}
	occ := p.Occupied()
	for sq := int(king); ; sq += step {
		if p.attackersTo(Square(sq), occ)&p.byColor[them] != 0 {
			return false
		}
		if Square(sq) == kingTo {
			break
		}
	}
	return true
}

// Legal reports whether a pseudo-legal move m is fully legal: it does not leave the mover's
// own king in check. The caller must already have established PseudoLegal(m).
func (p *Position) Legal(m Move) bool {
	us := p.sideToMove
	from, to := m.From(), m.To()
	king := p.KingSquare(us)

	if m.Kind() == Castling {
		return p.pseudoLegalCastling(m)
	}

	if m.Kind() == EnPassant {
		capSq := to - 8
		if us == Black {
			capSq = to + 8
		}
		occ := p.Occupied()
		occ &^= BitMask(from) | BitMask(capSq)
		occ |= BitMask(to)
		return p.attackersTo(king, occ)&p.byColor[us.Opponent()]&occ == 0
	}

	if from == king {
		// The king itself must be removed from the occupancy before testing: otherwise a
		// square directly behind the king on a slider's ray would look safe when it isn't.
		occ := p.Occupied() &^ BitMask(from)
		return p.attackersTo(to, occ)&p.byColor[us.Opponent()] == 0
	}

	// Not a king move. In check, it must capture the single checker or block its ray.
	if checkers := p.st.CheckersBB; checkers != 0 {
		if checkers&(checkers-1) != 0 {
			return false
		}
		if (Between(king, checkers.LSB())|checkers)&BitMask(to) == 0 {
			return false
		}
	}

	// Legal iff not pinned, or moving along the pin ray.
	if p.st.BlockersForKing[us]&BitMask(from) == 0 {
		return true
	}
	return Aligned(from, to, king)
}

// GivesCheck reports whether playing pseudo-legal, legal move m would check the opponent.
// Must be called before the move is made.
func (p *Position) GivesCheck(m Move) bool {
	us := p.sideToMove
	them := us.Opponent()
	from, to := m.From(), m.To()
	pc := p.PieceOn(from)
	theirKing := p.KingSquare(them)

	if p.st.CheckSquares[pc.Type()].IsSet(to) {
		return true
	}

	// Discovered check: from is a blocker for their king and moving off the line uncovers it.
	if p.st.BlockersForKing[them]&BitMask(from) != 0 && !Aligned(from, to, theirKing) {
		return true
	}

	switch m.Kind() {
	case Promotion:
		occ := p.Occupied() &^ BitMask(from) | BitMask(to)
		return Attacks(m.PromotionType(), to, occ).IsSet(theirKing)
	case EnPassant:
		capSq := to - 8
		if us == Black {
			capSq = to + 8
		}
		occ := p.Occupied() &^ BitMask(from) &^ BitMask(capSq) | BitMask(to)
		return (RookAttacks(theirKing, occ)&(p.Pieces(us, Rook)|p.Pieces(us, Queen)) != 0) ||
			(BishopAttacks(theirKing, occ)&(p.Pieces(us, Bishop)|p.Pieces(us, Queen)) != 0)
	case Castling:
		rookTo := castlingRookTo(us, rightFromCastlingMove(us, from, to))
		occ := p.Occupied() &^ BitMask(from) &^ BitMask(to) | BitMask(rookTo)
		return RookAttacks(rookTo, occ).IsSet(theirKing)
	default:
		return false
	}
}

func rightFromCastlingMove(us Color, king, rook Square) CastlingRight {
	if rook > king {
		return KingSide(us)
	}
	return QueenSide(us)
}
