package puzgen

// hasMate is the cheap gate run before committing to a full cook. It trusts
// the prior annotation first: no annotation, or an annotation that does not
// claim a mate for the side to move, means no oracle query at all. When the
// annotation does claim a mate, one single-line query must independently
// confirm that the top move still leads to mate at the configured depth.
func (a *Analyzer) hasMate(ap AnnotatedPosition) (bool, error) {
	if ap.Eval == nil {
		return false, nil
	}
	mate, ok := ap.Eval.(MateIn)
	if !ok || mate.Side != ap.Pos.Turn() {
		return false, nil
	}

	cands, err := a.oracle.Analyse(ap.Pos, 1)
	if err != nil {
		return false, err
	}
	return len(cands) > 0 && IsMate(cands[0].Score), nil
}
