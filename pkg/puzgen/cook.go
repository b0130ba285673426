package puzgen

import "github.com/notnil/chess"

// maxCookDepth bounds the recursion. Cooked lines advance one ply per call
// and end at checkmate, so the ceiling only matters if terminal detection
// were ever wrong.
const maxCookDepth = 64

// cook recursively derives the unique forced continuation from pos with
// sideToMate attacking. It returns the move list and true on success; false
// means the line is not forced at some ply, which the caller treats as an
// ordinary negative outcome.
func (a *Analyzer) cook(pos *chess.Position, sideToMate chess.Color, depth int) ([]*chess.Move, bool, error) {
	if pos.Status() != chess.NoMethod {
		return nil, true, nil
	}
	if depth >= maxCookDepth {
		a.log.Warn().Str("fen", pos.String()).Msg("recursion ceiling hit, rejecting line")
		return nil, false, nil
	}

	cands, err := a.oracle.Analyse(pos, 2)
	if err != nil {
		return nil, false, err
	}

	var move *chess.Move
	if pos.Turn() == sideToMate {
		move = a.onlyMateMove(cands)
	} else {
		move = a.onlyDefensiveMove(cands)
	}
	if move == nil {
		return nil, false, nil
	}

	next, ok, err := a.cook(pos.Update(move), sideToMate, depth+1)
	if err != nil || !ok {
		return nil, false, err
	}
	return append([]*chess.Move{move}, next...), true, nil
}

// onlyMateMove applies the attacker rule: the top line must be a mate and
// the second line, if one exists, must not be. Uniqueness is mandatory; no
// alternate move is ever tried.
func (a *Analyzer) onlyMateMove(cands []CandidateMove) *chess.Move {
	if len(cands) == 0 || !IsMate(cands[0].Score) {
		a.log.Debug().Msg("best move is not a mate")
		return nil
	}
	if len(cands) > 1 && IsMate(cands[1].Score) {
		a.log.Debug().Msg("second best move is also a mate")
		return nil
	}
	return cands[0].Move
}

// onlyDefensiveMove applies the defender rule: the reply is forced exactly
// when the ranked list holds a single candidate. Only the count matters,
// never the evaluation of the reply.
func (a *Analyzer) onlyDefensiveMove(cands []CandidateMove) *chess.Move {
	if len(cands) != 1 {
		a.log.Debug().Int("replies", len(cands)).Msg("defender is not forced")
		return nil
	}
	return cands[0].Move
}
