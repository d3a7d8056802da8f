package studymd

import (
	"regexp"
	"strings"
)

// Flashcard is a parsed front/back pair. Not persisted; derived from the
// generated markdown on demand.
type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// The generator is instructed to emit "**Front:** ... / **Back:** ..."
// blocks but drifts in practice (missing colons, stray bold runs), so
// the markers are matched loosely.
var (
	frontMarkerRe = regexp.MustCompile(`(?i)\*\*\s*front\s*:?\s*\*\*\s*:?`)
	backMarkerRe  = regexp.MustCompile(`(?i)\*\*\s*back\s*:?\s*\*\*\s*:?`)

	legacyFrontRe = regexp.MustCompile(`(?i)^front\s*:\s*`)
	legacyBackRe  = regexp.MustCompile(`(?i)^back\s*:\s*`)
)

type flashcardState int

const (
	flashcardIdle flashcardState = iota
	flashcardBuildingFront
	flashcardBuildingBack
)

// FlashcardParser walks generated markdown line by line, building
// front/back pairs. It never fails: unusable input yields an empty slice.
type FlashcardParser struct {
	state flashcardState
	front string
	back  string
	cards []Flashcard
}

func NewFlashcardParser() *FlashcardParser {
	return &FlashcardParser{state: flashcardIdle}
}

// ParseFlashcards converts a markdown string into ordered flashcards.
// If the marker-based pass yields nothing, a legacy-format pass over
// "Front: ... / Back: ..." lines runs instead.
func ParseFlashcards(markdown string) []Flashcard {
	p := NewFlashcardParser()
	cards := p.Parse(markdown)
	if len(cards) == 0 {
		cards = parseLegacyFlashcards(markdown)
	}
	return cards
}

func (p *FlashcardParser) Parse(markdown string) []Flashcard {
	p.state = flashcardIdle
	p.front, p.back = "", ""
	p.cards = make([]Flashcard, 0)

	for _, line := range strings.Split(markdown, "\n") {
		p.feed(line)
	}
	p.commit()

	return p.cards
}

// feed advances the state machine by one line.
func (p *FlashcardParser) feed(line string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return
	}

	if loc := frontMarkerRe.FindStringIndex(trimmed); loc != nil {
		// A new card begins; flush any complete pending pair first.
		p.commit()
		p.front = strings.TrimSpace(trimmed[loc[1]:])
		p.back = ""
		p.state = flashcardBuildingFront
		return
	}

	if loc := backMarkerRe.FindStringIndex(trimmed); loc != nil && p.state != flashcardIdle {
		p.back = strings.TrimSpace(trimmed[loc[1]:])
		p.state = flashcardBuildingBack
		if p.front != "" && p.back != "" {
			p.commit()
		}
		return
	}

	switch p.state {
	case flashcardBuildingFront:
		p.front = joinLine(p.front, trimmed)
	case flashcardBuildingBack:
		p.back = joinLine(p.back, trimmed)
	}
}

// commit stores the pending pair when both sides are non-empty and
// resets the machine.
func (p *FlashcardParser) commit() {
	if p.front != "" && p.back != "" {
		p.cards = append(p.cards, Flashcard{Front: p.front, Back: p.back})
	}
	p.front, p.back = "", ""
	p.state = flashcardIdle
}

func joinLine(existing, next string) string {
	if existing == "" {
		return next
	}
	return existing + " " + next
}

// parseLegacyFlashcards recovers pairs from the older generator output:
// either "Front: ... | Back: ..." on one line or a "Front: ..." line
// immediately followed by a "Back: ..." line.
func parseLegacyFlashcards(markdown string) []Flashcard {
	cards := make([]Flashcard, 0)
	lines := strings.Split(markdown, "\n")

	for i := 0; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		loc := legacyFrontRe.FindStringIndex(trimmed)
		if loc == nil {
			continue
		}
		rest := strings.TrimSpace(trimmed[loc[1]:])

		// Pipe-delimited single line.
		if idx := strings.Index(rest, "|"); idx >= 0 {
			front := strings.TrimSpace(rest[:idx])
			backPart := strings.TrimSpace(rest[idx+1:])
			if backLoc := legacyBackRe.FindStringIndex(backPart); backLoc != nil {
				backPart = strings.TrimSpace(backPart[backLoc[1]:])
			}
			if front != "" && backPart != "" {
				cards = append(cards, Flashcard{Front: front, Back: backPart})
			}
			continue
		}

		// Two-line form: the next line must carry the back.
		if i+1 < len(lines) {
			next := strings.TrimSpace(lines[i+1])
			if backLoc := legacyBackRe.FindStringIndex(next); backLoc != nil {
				back := strings.TrimSpace(next[backLoc[1]:])
				if rest != "" && back != "" {
					cards = append(cards, Flashcard{Front: rest, Back: back})
				}
				i++
			}
		}
	}

	return cards
}
