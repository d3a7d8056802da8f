package studymd

import (
	"testing"
)

func TestParseExam(t *testing.T) {
	tests := []struct {
		name        string
		markdown    string
		wantCount   int
		wantOptions []string
		wantAnswer  int
	}{
		{
			name:        "question with answer line",
			markdown:    "1. What is 2+2?\nA) 3\nB) 4\n**Answer:** B) 4",
			wantCount:   1,
			wantOptions: []string{"3", "4"},
			wantAnswer:  1,
		},
		{
			name:        "no answer marker defaults to ungraded",
			markdown:    "1. Pick one\nA) first\nB) second\nC) third\nD) fourth",
			wantCount:   1,
			wantOptions: []string{"first", "second", "third", "fourth"},
			wantAnswer:  -1,
		},
		{
			name:        "inline correct marker on option",
			markdown:    "1. Which?\nA) wrong\nB) right **Answer**\nC) wrong too",
			wantCount:   1,
			wantOptions: []string{"wrong", "right", "wrong too"},
			wantAnswer:  1,
		},
		{
			name:        "answer line overrides inline marker",
			markdown:    "1. Which?\nA) one **Answer**\nB) two\n**Answer:** B) two",
			wantCount:   1,
			wantOptions: []string{"one", "two"},
			wantAnswer:  1,
		},
		{
			name:        "multi-line question text",
			markdown:    "1. Given a binary tree\nwith n nodes, what is the height bound?\nA) log n\nB) n\n**Answer:** B) n",
			wantCount:   1,
			wantOptions: []string{"log n", "n"},
			wantAnswer:  1,
		},
		{
			name:      "question without options is dropped",
			markdown:  "1. An essay prompt with no choices\n2. Real one\nA) yes\nB) no\n**Answer:** A) yes",
			wantCount: 1,
		},
		{
			name:      "empty input",
			markdown:  "",
			wantCount: 0,
		},
		{
			name:      "prose only",
			markdown:  "No numbered questions in this text at all.",
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseExam(tt.markdown)

			if len(got) != tt.wantCount {
				t.Fatalf("question count = %d, want %d (%v)", len(got), tt.wantCount, got)
			}
			if tt.wantCount == 0 {
				return
			}

			q := got[0]
			if tt.wantOptions != nil {
				if len(q.Options) != len(tt.wantOptions) {
					t.Fatalf("option count = %d, want %d", len(q.Options), len(tt.wantOptions))
				}
				for i := range q.Options {
					if q.Options[i] != tt.wantOptions[i] {
						t.Errorf("option %d = %q, want %q", i, q.Options[i], tt.wantOptions[i])
					}
				}
			}
			if tt.wantOptions != nil && q.CorrectAnswerIndex != tt.wantAnswer {
				t.Errorf("correct index = %d, want %d", q.CorrectAnswerIndex, tt.wantAnswer)
			}
		})
	}
}

func TestParseExamMultipleQuestionsInOrder(t *testing.T) {
	markdown := "# Sample Exam Questions\n\n" +
		"1. First question?\n   A) a1\n   B) b1\n   **Answer:** A) a1\n\n" +
		"2. Second question?\n   A) a2\n   B) b2\n   C) c2\n   **Answer:** C) c2\n\n" +
		"3. Third question?\n   A) a3\n   B) b3\n"

	got := ParseExam(markdown)

	if len(got) != 3 {
		t.Fatalf("question count = %d, want 3", len(got))
	}
	if got[0].Question != "First question?" {
		t.Errorf("question 0 = %q", got[0].Question)
	}
	if got[0].CorrectAnswerIndex != 0 {
		t.Errorf("question 0 correct = %d, want 0", got[0].CorrectAnswerIndex)
	}
	if got[1].CorrectAnswerIndex != 2 {
		t.Errorf("question 1 correct = %d, want 2", got[1].CorrectAnswerIndex)
	}
	if got[2].CorrectAnswerIndex != -1 {
		t.Errorf("question 2 correct = %d, want -1 (ungraded)", got[2].CorrectAnswerIndex)
	}
	if got[2].Explanation != "" {
		t.Errorf("question 2 explanation = %q, want empty", got[2].Explanation)
	}
}
