package studymd

import (
	"regexp"
	"strings"
)

// ExamQuestion is a parsed multiple-choice question. CorrectAnswerIndex
// is -1 when no answer marker was found; consumers must treat that as
// "ungraded", never as option 0.
type ExamQuestion struct {
	Question           string   `json:"question"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correct_answer_index"`
	Explanation        string   `json:"explanation,omitempty"`
}

var (
	questionStartRe = regexp.MustCompile(`^\s*(\d+)\.\s*`)
	optionRe        = regexp.MustCompile(`^\s*([A-D])\)\s*`)
	answerMarkerRe  = regexp.MustCompile(`(?i)(?:\*\*\s*answer\s*:?\s*\*\*\s*:?|\banswer\s*:)`)
	answerLetterRe  = regexp.MustCompile(`\b([A-D])\)`)
)

type examState int

const (
	examIdle examState = iota
	examInQuestion
)

// ExamParser converts generated markdown into ordered exam questions.
// Like the flashcard parser it degrades instead of failing: malformed
// questions are dropped, an empty result is valid.
type ExamParser struct {
	state    examState
	question ExamQuestion
	parsed   []ExamQuestion
}

func NewExamParser() *ExamParser {
	return &ExamParser{state: examIdle}
}

// ParseExam converts a markdown string into ordered exam questions.
func ParseExam(markdown string) []ExamQuestion {
	return NewExamParser().Parse(markdown)
}

func (p *ExamParser) Parse(markdown string) []ExamQuestion {
	p.state = examIdle
	p.parsed = make([]ExamQuestion, 0)
	p.reset()

	for _, line := range strings.Split(markdown, "\n") {
		p.feed(line)
	}
	p.commit()

	return p.parsed
}

func (p *ExamParser) reset() {
	p.question = ExamQuestion{
		Options:            make([]string, 0, 4),
		CorrectAnswerIndex: -1,
	}
}

func (p *ExamParser) feed(line string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return
	}

	if loc := questionStartRe.FindStringIndex(trimmed); loc != nil {
		p.commit()
		p.question.Question = strings.TrimSpace(trimmed[loc[1]:])
		p.state = examInQuestion
		return
	}

	if p.state != examInQuestion {
		return
	}

	if loc := optionRe.FindStringIndex(trimmed); loc != nil {
		text := strings.TrimSpace(trimmed[loc[1]:])
		// The generator sometimes tags the correct option inline instead
		// of emitting a separate answer line.
		if answerMarkerRe.MatchString(text) {
			text = strings.TrimSpace(answerMarkerRe.ReplaceAllString(text, ""))
			p.question.Options = append(p.question.Options, text)
			p.question.CorrectAnswerIndex = len(p.question.Options) - 1
		} else {
			p.question.Options = append(p.question.Options, text)
		}
		return
	}

	if loc := answerMarkerRe.FindStringIndex(trimmed); loc != nil {
		p.question.Explanation = strings.TrimSpace(trimmed[loc[1]:])
		// A bare "B)" token on the answer line wins over anything the
		// option branch recorded.
		if m := answerLetterRe.FindStringSubmatch(trimmed[loc[1]:]); m != nil {
			p.question.CorrectAnswerIndex = int(m[1][0] - 'A')
		}
		return
	}

	// Multi-line question text, but only until options start; stray
	// bold-marked or trailing prose after the options is ignored.
	if len(p.question.Options) == 0 && !strings.HasPrefix(trimmed, "**") {
		p.question.Question = joinLine(p.question.Question, trimmed)
	}
}

// commit stores the pending question if it gathered at least one option.
func (p *ExamParser) commit() {
	if p.state == examInQuestion && len(p.question.Options) > 0 {
		p.parsed = append(p.parsed, p.question)
	}
	p.reset()
	p.state = examIdle
}
