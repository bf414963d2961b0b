// Package nnue adapts the NNUE evaluator external module described in the
// engine's interface contract: init from a weights file, evaluate a position
// given a side-to-move flag plus parallel piece/square arrays, or fall back
// to a FEN string. The network's internal file format and inference math are
// not part of this package's contract with callers; only PSQTWeights (one
// int32 weight per piece-code/square pair, Stockfish's PSQTWeights layout)
// are modeled, which is enough to produce a believable, deterministic score
// while keeping the real feature-transformer/affine-layer math out of scope.
package nnue

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
)

// Piece code layout matches the engine's array-form contract: slots 0 and 1
// are reserved for the two kings, codes run 1..6 for White King..Pawn (in
// descending value order) and 7..12 for the Black equivalents.
const (
	numPieceCodes = 15 // codes 0..14, 0 unused (terminator)
	numSquares    = 64
)

const (
	magic   uint32 = 0x4E4E5545 // "NNUE" read little-endian
	version uint32 = 1
)

// Network holds the loaded evaluator weights.
type Network struct {
	psqt [numPieceCodes][numSquares]int32
	bias int32
}

// Evaluator is the core's handle onto the NNUE module. It is safe for
// concurrent read-only use by search workers once Init has returned true.
type Evaluator struct {
	net   *Network
	ready bool
}

// New returns an Evaluator with no network loaded; Evaluate and EvaluateFEN
// are no-ops (return 0) until Init succeeds.
func New() *Evaluator {
	return &Evaluator{}
}

// Init loads weights from modelPath ("model.nnue" by convention) and reports
// whether the evaluator is ready to score positions. A false return is fatal
// to the caller: the engine has no graceful classical-eval fallback for the
// neural evaluator, matching the reference engine's assert-on-load-failure
// behavior.
func (e *Evaluator) Init(modelPath string) bool {
	net, err := loadNetwork(modelPath)
	if err != nil {
		return false
	}
	e.net = net
	e.ready = true
	return true
}

// Ready reports whether Init has successfully loaded a network.
func (e *Evaluator) Ready() bool {
	return e.ready
}

func loadNetwork(path string) (*Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("nnue: open %s: %w", path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var gotMagic, gotVersion uint32
	if err := binary.Read(r, binary.LittleEndian, &gotMagic); err != nil {
		return nil, fmt.Errorf("nnue: read magic: %w", err)
	}
	if gotMagic != magic {
		return nil, fmt.Errorf("nnue: bad magic %08x", gotMagic)
	}
	if err := binary.Read(r, binary.LittleEndian, &gotVersion); err != nil {
		return nil, fmt.Errorf("nnue: read version: %w", err)
	}
	if gotVersion != version {
		return nil, fmt.Errorf("nnue: unsupported version %d", gotVersion)
	}

	net := &Network{}
	for code := 0; code < numPieceCodes; code++ {
		if err := binary.Read(r, binary.LittleEndian, &net.psqt[code]); err != nil {
			return nil, fmt.Errorf("nnue: read psqt[%d]: %w", code, err)
		}
	}
	if err := binary.Read(r, binary.LittleEndian, &net.bias); err != nil {
		return nil, fmt.Errorf("nnue: read bias: %w", err)
	}
	return net, nil
}

// Evaluate scores a position from the array form of the contract: pieces and
// squares run in parallel, terminated by the first zero piece code. The
// score is returned from sideToMove's perspective (0 = White, 1 = Black).
func (e *Evaluator) Evaluate(sideToMove int32, pieces, squares []int32) int32 {
	if !e.ready {
		return 0
	}
	var score int32 = e.net.bias
	for i := range pieces {
		code := pieces[i]
		if code == 0 {
			break
		}
		score += e.net.psqt[code][squares[i]]
	}
	if sideToMove == 1 {
		score = -score
	}
	return score
}

// EvaluateFEN is the fallback/verification path: it decodes just enough of a
// FEN board-placement field to build the same array-form inputs Evaluate
// expects, then delegates to it. Used to check that both encodings produce
// an identical score for a given position.
func (e *Evaluator) EvaluateFEN(fen string) int32 {
	if !e.ready {
		return 0
	}
	pieces, squares, sideToMove, err := decodeFEN(fen)
	if err != nil {
		return 0
	}
	return e.Evaluate(sideToMove, pieces, squares)
}

// decodeFEN walks the placement field of fen and produces the piece/square
// arrays in the same slot convention as the engine's NNUE feeder: slots 0
// and 1 hold the White and Black kings, the rest fill in board order.
func decodeFEN(fen string) (pieces, squares []int32, sideToMove int32, err error) {
	fields := splitFields(fen)
	if len(fields) < 2 {
		return nil, nil, 0, fmt.Errorf("nnue: malformed fen %q", fen)
	}
	placement, stm := fields[0], fields[1]

	pieces = make([]int32, 33)
	squares = make([]int32, 33)
	next := 2

	rank := 7
	file := 0
	for _, c := range placement {
		switch {
		case c == '/':
			rank--
			file = 0
		case c >= '1' && c <= '8':
			file += int(c - '0')
		default:
			code, color, isKing := pieceCodeFromFEN(byte(c))
			if code == 0 {
				return nil, nil, 0, fmt.Errorf("nnue: bad fen piece %q", c)
			}
			sq := int32(rank*8 + file)
			if isKing {
				pieces[color] = code
				squares[color] = sq
			} else if next < len(pieces) {
				pieces[next] = code
				squares[next] = sq
				next++
			}
			file++
		}
	}

	if stm == "b" {
		sideToMove = 1
	}
	return pieces, squares, sideToMove, nil
}

// pieceCodeFromFEN converts a FEN piece letter to the engine's NNUE piece
// code: (6 - pieceIndex) + colorIndex*6, with Pawn..King indexed 0..5.
func pieceCodeFromFEN(c byte) (code int32, colorIndex int32, isKing bool) {
	lower := c | 0x20
	var pieceIndex int32
	switch lower {
	case 'k':
		pieceIndex, isKing = 5, true
	case 'q':
		pieceIndex = 4
	case 'r':
		pieceIndex = 3
	case 'b':
		pieceIndex = 2
	case 'n':
		pieceIndex = 1
	case 'p':
		pieceIndex = 0
	default:
		return 0, 0, false
	}
	if c >= 'a' && c <= 'z' {
		colorIndex = 1
	}
	code = (6 - pieceIndex) + colorIndex*6
	return code, colorIndex, isKing
}

func splitFields(s string) []string {
	var fields []string
	start := -1
	for i := 0; i <= len(s); i++ {
		if i < len(s) && s[i] != ' ' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			fields = append(fields, s[start:i])
			start = -1
		}
	}
	return fields
}
