package model

import "fmt"

// Notation renders m in short algebraic form. It must be called before m is
// applied; the check suffix is added by checkSuffix afterwards.
func (b *Board) Notation(m Move) string {
	if m.IsCastling() {
		if b.Label(*m.CastlingRook)[0] == 'h' {
			return "O-O"
		}
		return "O-O-O"
	}
	prefix := m.Piece.Type.getPieceNotation()
	fileSpecifier := ""
	capture := ""
	if m.Captured != nil {
		capture = "x"
		if m.Piece.Type == Pawn {
			fileSpecifier = b.Label(m.From)[:1]
		}
	}
	if m.Piece.Type != Pawn {
		fileSpecifier = b.disambiguation(m)
	}
	promotion := ""
	if m.Promotion != nil {
		promotion = "=" + m.Promotion.Type.getPieceNotation()
	}
	return fmt.Sprintf("%s%s%s%s%s", prefix, fileSpecifier, capture, b.Label(m.To), promotion)
}

// disambiguation returns the file, rank or full label needed when another
// piece of the same type could reach the same square.
func (b *Board) disambiguation(m Move) string {
	from := b.Label(m.From)
	sameFile, sameRank, clash := false, false, false
	for _, other := range b.legal[m.Piece.Color] {
		if other.To != m.To || other.From == m.From || other.Piece.Type != m.Piece.Type {
			continue
		}
		clash = true
		otherFrom := b.Label(other.From)
		sameFile = sameFile || otherFrom[0] == from[0]
		sameRank = sameRank || otherFrom[1] == from[1]
	}
	switch {
	case !clash:
		return ""
	case !sameFile:
		return from[:1]
	case !sameRank:
		return from[1:]
	}
	return from
}

func (b *Board) checkSuffix() string {
	switch b.Status(b.Turn) {
	case Checkmate:
		return "#"
	case InCheck:
		return "+"
	}
	return ""
}

// ply describes m for clients. Like Notation it reads the position before
// m is applied.
func (b *Board) ply(m Move) Ply {
	p := Ply{
		Piece:         m.Piece,
		From:          b.Label(m.From),
		To:            b.Label(m.To),
		CapturedPiece: m.Captured,
		Notation:      b.Notation(m),
	}
	if m.Promotion != nil {
		p.Promotion = m.Promotion.Type
	}
	if m.IsCastling() {
		p.CastleRookMove = &CastleRookMove{
			From: b.Label(*m.CastlingRook),
			To:   b.Label(m.rookDestination()),
		}
	}
	return p
}
