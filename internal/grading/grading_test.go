package grading

import (
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/quiz-gen/backend/internal/models"
)

func arithmeticQuiz() *models.Quiz {
	mk := func(text, a, b, c, d, correct string) models.Question {
		return models.Question{
			Question:      text,
			Options:       map[string]string{"A": a, "B": b, "C": c, "D": d},
			CorrectAnswer: correct,
		}
	}
	return &models.Quiz{
		Topic: "Arithmetic",
		Questions: []models.Question{
			mk("What is 2 + 2?", "3", "4", "5", "6", "B"),
			mk("What is 3 + 2?", "3", "4", "5", "6", "C"),
			mk("What is 10 - 5?", "3", "4", "5", "6", "C"),
			mk("What is 9 / 3?", "3", "4", "5", "6", "A"),
			mk("What is 10 / 2?", "3", "4", "5", "6", "C"),
		},
	}
}

func TestArithmeticScenario(t *testing.T) {
	quiz := arithmeticQuiz()
	// Last answer is C so positions 2 and 5 match the key.
	userAnswers := []string{"A", "C", "B", "D", "C"}

	outcome := ValidateInputs(quiz, userAnswers)
	if !outcome.Valid {
		t.Fatalf("expected valid inputs, got: %s", outcome.Message)
	}

	score := CalculateScore(userAnswers, quiz.CorrectAnswers())
	want := models.ScoreSummary{
		TotalQuestions:  5,
		CorrectCount:    2,
		IncorrectCount:  3,
		ScorePercentage: 40.0,
		ScoreDisplay:    "2/5",
	}
	if score != want {
		t.Errorf("expected %+v, got %+v", want, score)
	}

	results := GetDetailedResults(outcome.Questions, userAnswers)
	wantCorrect := []bool{false, true, false, false, true}
	for i, r := range results {
		if r.QuestionNumber != i+1 {
			t.Errorf("result %d: expected question number %d, got %d", i, i+1, r.QuestionNumber)
		}
		if r.IsCorrect != wantCorrect[i] {
			t.Errorf("question %d: expected is_correct=%v, got %v", i+1, wantCorrect[i], r.IsCorrect)
		}
		if r.QuestionText != quiz.Questions[i].Question {
			t.Errorf("question %d: text not carried over", i+1)
		}
		if !reflect.DeepEqual(r.Options, quiz.Questions[i].Options) {
			t.Errorf("question %d: options not carried over", i+1)
		}
	}
}

func TestArithmeticScenario_OnlySecondMatches(t *testing.T) {
	quiz := arithmeticQuiz()
	userAnswers := []string{"A", "C", "B", "D", "A"}

	score := CalculateScore(userAnswers, quiz.CorrectAnswers())
	want := models.ScoreSummary{
		TotalQuestions:  5,
		CorrectCount:    1,
		IncorrectCount:  4,
		ScorePercentage: 20.0,
		ScoreDisplay:    "1/5",
	}
	if score != want {
		t.Errorf("expected %+v, got %+v", want, score)
	}

	results := GetDetailedResults(quiz.Questions, userAnswers)
	for i, r := range results {
		if wantCorrect := i == 1; r.IsCorrect != wantCorrect {
			t.Errorf("question %d: expected is_correct=%v, got %v", i+1, wantCorrect, r.IsCorrect)
		}
	}
}

func TestValidateInputs_Rejections(t *testing.T) {
	fiveAnswers := []string{"A", "B", "C", "D", "A"}

	tests := []struct {
		name    string
		quiz    *models.Quiz
		answers []string
		want    string
	}{
		{"quiz absent", nil, fiveAnswers, "Quiz data cannot be empty"},
		{"questions absent", &models.Quiz{Topic: "x"}, fiveAnswers, "Quiz data is missing 'questions' field"},
		{"questions empty", &models.Quiz{Topic: "x", Questions: []models.Question{}}, fiveAnswers, "Quiz has no questions"},
		{"answers absent", arithmeticQuiz(), nil, "User answers cannot be missing"},
		{"answers empty", arithmeticQuiz(), []string{}, "User answers cannot be empty"},
		{"too few answers", arithmeticQuiz(), []string{"A", "B"}, "Answer count (2) doesn't match question count (5)"},
		{"too many answers", arithmeticQuiz(), append(fiveAnswers, "B"), "Answer count (6) doesn't match question count (5)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := ValidateInputs(tt.quiz, tt.answers)
			if outcome.Valid {
				t.Fatal("expected invalid outcome")
			}
			if outcome.Message != tt.want {
				t.Errorf("expected %q, got %q", tt.want, outcome.Message)
			}
			if outcome.Questions != nil {
				t.Error("expected no questions on failure")
			}
		})
	}
}

func TestValidateInputs_Idempotent(t *testing.T) {
	quiz := arithmeticQuiz()
	answers := []string{"A", "B", "C", "D", "A"}

	first := ValidateInputs(quiz, answers)
	second := ValidateInputs(quiz, answers)
	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical outcomes on repeated calls")
	}
	if !reflect.DeepEqual(quiz, arithmeticQuiz()) {
		t.Error("ValidateInputs mutated the quiz")
	}
}

// TestCalculateScore_Properties checks every answer sheet for a three-question key.
func TestCalculateScore_Properties(t *testing.T) {
	letters := models.OptionLetters
	key := []string{"A", "C", "D"}

	for _, a := range letters {
		for _, b := range letters {
			for _, c := range letters {
				answers := []string{a, b, c}
				score := CalculateScore(answers, key)

				if score.CorrectCount+score.IncorrectCount != score.TotalQuestions {
					t.Errorf("%v: counts do not add up: %+v", answers, score)
				}
				if score.ScorePercentage < 0 || score.ScorePercentage > 100 {
					t.Errorf("%v: percentage out of range: %v", answers, score.ScorePercentage)
				}
				perfect := reflect.DeepEqual(answers, key)
				if (score.ScorePercentage == 100) != perfect {
					t.Errorf("%v: 100%% iff answers match key, got %v", answers, score.ScorePercentage)
				}
				if want := fmt.Sprintf("%d/%d", score.CorrectCount, score.TotalQuestions); score.ScoreDisplay != want {
					t.Errorf("%v: expected display %q, got %q", answers, want, score.ScoreDisplay)
				}
			}
		}
	}
}

func TestCalculateScore_Percentages(t *testing.T) {
	tests := []struct {
		user, key []string
		want      float64
	}{
		{[]string{"A"}, []string{"A"}, 100},
		{[]string{"B"}, []string{"A"}, 0},
		{[]string{"A", "B", "C"}, []string{"A", "B", "D"}, 200.0 / 3},
		{[]string{}, []string{}, 0},
	}

	for _, tt := range tests {
		got := CalculateScore(tt.user, tt.key).ScorePercentage
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("CalculateScore(%v, %v) = %v, want %v", tt.user, tt.key, got, tt.want)
		}
	}
}

func TestCalculateScore_PositionAligned(t *testing.T) {
	// Same multiset of letters, different order: only position matters.
	score := CalculateScore([]string{"B", "A"}, []string{"A", "B"})
	if score.CorrectCount != 0 {
		t.Errorf("expected 0 correct, got %d", score.CorrectCount)
	}
}

func TestGetDetailedResults_OrderAndLength(t *testing.T) {
	quiz := arithmeticQuiz()
	answers := quiz.CorrectAnswers()
	answers[3] = "B"

	results := GetDetailedResults(quiz.Questions, answers)
	if len(results) != len(quiz.Questions) {
		t.Fatalf("expected %d results, got %d", len(quiz.Questions), len(results))
	}

	for i, r := range results {
		if r.QuestionNumber != i+1 {
			t.Errorf("expected question number %d, got %d", i+1, r.QuestionNumber)
		}
		if r.IsCorrect != (answers[i] == quiz.Questions[i].CorrectAnswer) {
			t.Errorf("question %d: is_correct mismatch", i+1)
		}
		if r.UserAnswer != answers[i] || r.CorrectAnswer != quiz.Questions[i].CorrectAnswer {
			t.Errorf("question %d: answers not carried over", i+1)
		}
	}
	if results[3].IsCorrect {
		t.Error("expected question 4 to be incorrect")
	}
}
