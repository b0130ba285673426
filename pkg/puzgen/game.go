package puzgen

import (
	"math"
	"regexp"
	"strconv"
	"time"

	"github.com/notnil/chess"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// layout is the PGN date tag format.
const layout = "2006.01.02"

// AnnotatedPosition is one played position together with the evaluation the
// upstream source attached to the move that produced it, if any.
type AnnotatedPosition struct {
	Pos *chess.Position
	// Eval is nil when the move carried no [%eval] comment.
	Eval Score
}

// GameRecord is the read-only view of one game the scanner works on: its
// identifier, player metadata and the played positions in order.
type GameRecord struct {
	ID        string
	Positions []AnnotatedPosition
	GameData  GameData
}

var evalRe = regexp.MustCompile(`\[%eval\s+([^\[\]\s]+)\]`)

// parseEvalComment extracts the evaluation from a PGN comment such as
// "[%eval #3] [%clk 0:01:30]". Returns nil when the comment carries no
// parsable eval.
func parseEvalComment(comment string) Score {
	m := evalRe.FindStringSubmatch(comment)
	if m == nil {
		return nil
	}
	val := m[1]
	if len(val) > 0 && val[0] == '#' {
		moves, err := strconv.Atoi(val[1:])
		if err != nil {
			return nil
		}
		side := chess.White
		if moves < 0 {
			side = chess.Black
			moves = -moves
		}
		return MateIn{Moves: moves, Side: side}
	}
	pawns, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return nil
	}
	return Centipawns{Value: int(math.Round(pawns * 100))}
}

// annotationFor scans all comments attached to one move for an eval.
func annotationFor(comments []string) Score {
	for _, c := range comments {
		if s := parseEvalComment(c); s != nil {
			return s
		}
	}
	return nil
}

// NewGameRecord builds the scanner input from a parsed game. The record
// covers the played positions after each move; the eval comment on move i
// annotates the position that move produced.
func NewGameRecord(g *chess.Game) *GameRecord {
	positions := g.Positions()
	comments := g.Comments()

	played := make([]AnnotatedPosition, 0, len(positions)-1)
	for i, pos := range positions[1:] {
		ap := AnnotatedPosition{Pos: pos}
		if i < len(comments) {
			ap.Eval = annotationFor(comments[i])
		}
		played = append(played, ap)
	}

	return &GameRecord{
		ID:        tagValue(g, "Site"),
		Positions: played,
		GameData:  gameDataFromTags(g),
	}
}

func tagValue(g *chess.Game, key string) string {
	if tp := g.GetTagPair(key); tp != nil {
		return tp.Value
	}
	return ""
}

func gameDataFromTags(g *chess.Game) GameData {
	data := GameData{
		WhitePlayer: tagValue(g, "White"),
		BlackPlayer: tagValue(g, "Black"),
	}
	for _, key := range []string{"UTCDate", "Date"} {
		if raw := tagValue(g, key); raw != "" {
			if t, err := time.Parse(layout, raw); err == nil {
				data.Date = primitive.NewDateTimeFromTime(t)
				break
			}
		}
	}
	return data
}
