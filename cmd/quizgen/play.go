package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/quiz-gen/backend/internal/generator"
	"github.com/quiz-gen/backend/internal/grading"
	"github.com/quiz-gen/backend/internal/models"
)

const maxInputAttempts = 3

type lineReader struct {
	r *bufio.Reader
}

func newLineReader(in io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReader(in)}
}

func (l *lineReader) ReadLine() (string, error) {
	line, err := l.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// playQuiz asks every question, grades the answers and explains the misses.
func (a *app) playQuiz(ctx context.Context, reader *lineReader, quiz *models.Quiz) error {
	answers := make([]string, 0, len(quiz.Questions))
	for i, q := range quiz.Questions {
		fmt.Fprintf(a.out, "\nQ%d: %s\n\n", i+1, q.Question)
		for _, letter := range models.OptionLetters {
			fmt.Fprintf(a.out, "%s. %s\n", letter, q.Options[letter])
		}

		letter, err := readAnswer(reader, a.out)
		if err != nil {
			return err
		}
		answers = append(answers, letter)
	}

	outcome := grading.ValidateInputs(quiz, answers)
	if !outcome.Valid {
		return fmt.Errorf("grading: %s", outcome.Message)
	}

	score := grading.CalculateScore(answers, quiz.CorrectAnswers())
	results := grading.GetDetailedResults(outcome.Questions, answers)

	fmt.Fprintf(a.out, "\nScore: %s (%.1f%%)\n", score.ScoreDisplay, score.ScorePercentage)
	for _, result := range results {
		if result.IsCorrect {
			fmt.Fprintf(a.out, "\nQ%d: correct\n", result.QuestionNumber)
			continue
		}

		fmt.Fprintf(a.out, "\nQ%d: you answered %s, correct answer is %s. %s\n",
			result.QuestionNumber, result.UserAnswer, result.CorrectAnswer, result.Options[result.CorrectAnswer])

		explanation, ok := a.explainer.GenerateExplanation(ctx,
			result.QuestionText, result.CorrectAnswer, result.Options[result.CorrectAnswer], a.apiKey)
		if !ok {
			explanation = generator.FallbackExplanation
		}
		fmt.Fprintf(a.out, "  %s\n", explanation)
	}
	return nil
}

func readAnswer(reader *lineReader, out io.Writer) (string, error) {
	for attempt := 1; attempt <= maxInputAttempts; attempt++ {
		fmt.Fprint(out, "\nYour answer: ")
		line, err := reader.ReadLine()
		if err != nil {
			return "", fmt.Errorf("read answer: %w", err)
		}

		letter := strings.ToUpper(line)
		if models.ValidOptionLetters[letter] {
			return letter, nil
		}
		fmt.Fprintln(out, "Invalid input. Please enter a letter A-D.")
	}
	return "", fmt.Errorf("no valid answer after %d tries", maxInputAttempts)
}
