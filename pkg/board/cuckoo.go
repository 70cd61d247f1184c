package board

// CuckooTable is a perfect-hash table, built by cuckoo displacement, of every reversible
// non-pawn move's Zobrist key. It is used to detect upcoming repetitions cheaply: a move
// is reversible (same key before/after modulo side-to-move) iff some piece could move
// directly between two squares with no other state change, which for non-pawn pieces is
// exactly "the piece attacks both squares from either one on an empty board".
type CuckooTable struct {
	key  [cuckooSize]Key
	move [cuckooSize]Move
	size int
}

const cuckooSize = 8192 // 2^13

func h1(k Key) int { return int((k >> 51) & (cuckooSize - 1)) }
func h2(k Key) int { return int((k >> 35) & (cuckooSize - 1)) }

// cuckooPieces enumerates the colored, non-pawn pieces whose moves are reversible.
var cuckooPieces = []Piece{
	WhiteKnight, WhiteBishop, WhiteRook, WhiteQueen, WhiteKing,
	BlackKnight, BlackBishop, BlackRook, BlackQueen, BlackKing,
}

func newCuckooTable(z *ZobristTable) *CuckooTable {
	c := &CuckooTable{}

	for _, pc := range cuckooPieces {
		for s1 := ZeroSquare; s1 < NumSquares; s1++ {
			for s2 := s1 + 1; s2 < NumSquares; s2++ {
				if Attacks(pc.Type(), s1, EmptyBitboard)&BitMask(s2) == 0 {
					continue
				}

				key := z.PSQ(pc, s1) ^ z.PSQ(pc, s2) ^ z.Side()
				move := NewMove(s1, s2)

				i := h1(key)
				for {
					key, c.key[i] = c.key[i], key
					move, c.move[i] = c.move[i], move
					if move == MoveNone {
						break
					}
					if i == h1(key) {
						i = h2(key)
					} else {
						i = h1(key)
					}
				}
				c.size++
			}
		}
	}
	return c
}

// Cuckoo is the process-wide cuckoo table, installed by Init.
var Cuckoo *CuckooTable

// Lookup returns the reversible move and its key stored at either hash slot for key, if any.
func (c *CuckooTable) Lookup(key Key) (Move, Key, bool) {
	if i := h1(key); c.key[i] == key {
		return c.move[i], c.key[i], true
	}
	if i := h2(key); c.key[i] == key {
		return c.move[i], c.key[i], true
	}
	return MoveNone, 0, false
}

// Size returns the number of entries inserted during construction (3668 for standard chess).
func (c *CuckooTable) Size() int {
	return c.size
}
