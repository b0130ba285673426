package puzgen

import (
	"encoding/json"

	"github.com/notnil/chess"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Puzzle is one extracted forced-mate puzzle: the position to present and
// the unique solution line, in both UCI and algebraic notation.
type Puzzle struct {
	StartFEN    string   `json:"fen" bson:"start_fen"`
	Solution    []string `json:"solution" bson:"solution"`
	SolutionSAN []string `json:"solution_san" bson:"solution_san"`
	IsWhiteTurn bool     `json:"is_white_turn" bson:"is_white_turn"`
	MateIn      int      `json:"mate_in" bson:"mate_in"`
	GameID      string   `json:"game_id" bson:"game_id"`
	GameData    GameData `json:"game_data,omitempty" bson:"game_data,omitempty"`
}

// GameData carries the metadata of the source game.
type GameData struct {
	WhitePlayer string             `json:"white_player" bson:"white_player"`
	BlackPlayer string             `json:"black_player" bson:"black_player"`
	Date        primitive.DateTime `json:"date,omitempty" bson:"date,omitempty"`
}

func (p Puzzle) String() string {
	j, _ := json.MarshalIndent(p, "", "\t")
	return string(j)
}

func newPuzzle(rec *GameRecord, start *chess.Position, solution []*chess.Move) *Puzzle {
	uciMoves := make([]string, 0, len(solution))
	sanMoves := make([]string, 0, len(solution))
	pos := start
	for _, move := range solution {
		uciMoves = append(uciMoves, chess.UCINotation{}.Encode(pos, move))
		sanMoves = append(sanMoves, chess.AlgebraicNotation{}.Encode(pos, move))
		pos = pos.Update(move)
	}

	return &Puzzle{
		StartFEN:    start.String(),
		Solution:    uciMoves,
		SolutionSAN: sanMoves,
		IsWhiteTurn: start.Turn() == chess.White,
		MateIn:      (len(solution) + 1) / 2,
		GameID:      rec.ID,
		GameData:    rec.GameData,
	}
}
