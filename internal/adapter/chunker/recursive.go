package chunker

import (
	"strings"
	"unicode/utf8"
)

// defaultSeparators is the boundary preference order: paragraph break, line
// break, sentence end, word space, then hard character cut.
var defaultSeparators = []string{"\n\n", "\n", ". ", " ", ""}

// RecursiveSplitter splits text into chunks of at most size runes, with up to
// overlap trailing runes of each chunk repeated at the start of the next.
// Splitting prefers the highest-priority separator that fits; a piece with no
// usable boundary falls back to a hard cut. The splitter is stateless: the
// same input always yields the same chunks.
type RecursiveSplitter struct {
	size       int
	overlap    int
	separators []string
}

func NewRecursiveSplitter(size, overlap int) *RecursiveSplitter {
	if size <= 0 {
		size = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		overlap = size / 2
	}
	return &RecursiveSplitter{
		size:       size,
		overlap:    overlap,
		separators: defaultSeparators,
	}
}

// Split divides text into overlapping chunks. Concatenating the chunks with
// each chunk's carried-over prefix removed reproduces the input exactly.
func (s *RecursiveSplitter) Split(text string) []string {
	if text == "" {
		return nil
	}
	return s.merge(s.divide(text, s.separators))
}

// divide recursively cuts text into pieces no longer than size runes.
// Separators stay attached to the preceding piece so that the concatenation
// of all pieces equals the input.
func (s *RecursiveSplitter) divide(text string, separators []string) []string {
	if utf8.RuneCountInString(text) <= s.size {
		return []string{text}
	}

	sep := separators[0]
	if sep == "" {
		return hardCut(text, s.size)
	}

	parts := strings.SplitAfter(text, sep)
	if len(parts) == 1 {
		// Separator absent, fall through to the next priority.
		return s.divide(text, separators[1:])
	}

	var pieces []string
	for _, part := range parts {
		if part == "" {
			continue
		}
		if utf8.RuneCountInString(part) <= s.size {
			pieces = append(pieces, part)
		} else {
			pieces = append(pieces, s.divide(part, separators[1:])...)
		}
	}
	return pieces
}

// merge greedily packs pieces into chunks of at most size runes, seeding each
// new chunk with whole trailing pieces of the previous one up to the overlap
// budget.
func (s *RecursiveSplitter) merge(pieces []string) []string {
	var chunks []string
	var cur []string
	curLen := 0

	for _, piece := range pieces {
		pieceLen := utf8.RuneCountInString(piece)

		if curLen > 0 && curLen+pieceLen > s.size {
			chunks = append(chunks, strings.Join(cur, ""))

			cur, curLen = s.carryOverlap(cur)
			// Shrink the carried overlap when it leaves no room for the
			// next piece.
			for curLen+pieceLen > s.size && len(cur) > 0 {
				curLen -= utf8.RuneCountInString(cur[0])
				cur = cur[1:]
			}
		}

		cur = append(cur, piece)
		curLen += pieceLen
	}

	if curLen > 0 {
		chunks = append(chunks, strings.Join(cur, ""))
	}
	return chunks
}

// carryOverlap selects whole trailing pieces of the finished chunk totalling
// at most overlap runes.
func (s *RecursiveSplitter) carryOverlap(cur []string) ([]string, int) {
	if s.overlap == 0 {
		return nil, 0
	}

	carryLen := 0
	start := len(cur)
	for i := len(cur) - 1; i >= 0; i-- {
		pieceLen := utf8.RuneCountInString(cur[i])
		if carryLen+pieceLen > s.overlap {
			break
		}
		carryLen += pieceLen
		start = i
	}

	carry := make([]string, len(cur)-start)
	copy(carry, cur[start:])
	return carry, carryLen
}

// hardCut slices text into size-rune pieces when no separator fits.
func hardCut(text string, size int) []string {
	runes := []rune(text)
	var out []string
	for i := 0; i < len(runes); i += size {
		end := i + size
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[i:end]))
	}
	return out
}
