package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/quiz-gen/backend/internal/config"
	"github.com/quiz-gen/backend/internal/generator"
	"github.com/quiz-gen/backend/internal/models"
)

func main() {
	topic := flag.String("topic", "", "quiz topic (prompted for when empty)")
	provider := flag.String("provider", "", "override LLM_PROVIDER (anthropic, openai, cli, mock)")
	attempts := flag.Int("attempts", 0, "override QUIZ_MAX_ATTEMPTS")
	play := flag.Bool("play", false, "take the quiz in the terminal after generating it")
	raw := flag.Bool("json", false, "print the raw quiz JSON")
	flag.Parse()

	godotenv.Load()
	if *provider != "" {
		os.Setenv("LLM_PROVIDER", *provider)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if *attempts > 0 {
		cfg.MaxAttempts = *attempts
	}

	llm, err := generator.NewClient(cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to create LLM client: %v", err)
	}

	a := &app{
		generator: generator.NewQuizGenerator(llm, cfg.MaxAttempts),
		explainer: generator.NewExplainer(llm),
		apiKey:    cfg.APIKey,
		in:        os.Stdin,
		out:       os.Stdout,
	}
	if err := a.run(context.Background(), *topic, *play, *raw); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type app struct {
	generator *generator.QuizGenerator
	explainer *generator.Explainer
	apiKey    string
	in        io.Reader
	out       io.Writer
}

func (a *app) run(ctx context.Context, topic string, play, raw bool) error {
	reader := newLineReader(a.in)

	if strings.TrimSpace(topic) == "" {
		fmt.Fprint(a.out, "Enter a quiz topic: ")
		line, err := reader.ReadLine()
		if err != nil {
			return fmt.Errorf("read topic: %w", err)
		}
		topic = line
	}

	fmt.Fprintf(a.out, "Generating quiz for topic: %s\n", strings.TrimSpace(topic))
	quiz, err := a.generator.GenerateQuiz(ctx, topic, a.apiKey)
	if err != nil {
		return err
	}

	if !play {
		displayQuiz(a.out, quiz)
	}
	if raw {
		data, err := json.MarshalIndent(quiz, "", "    ")
		if err != nil {
			return fmt.Errorf("encode quiz: %w", err)
		}
		fmt.Fprintf(a.out, "\nRaw JSON:\n%s\n", data)
	}
	if play {
		return a.playQuiz(ctx, reader, quiz)
	}
	return nil
}

// displayQuiz prints every question with its options and the correct answer.
func displayQuiz(out io.Writer, quiz *models.Quiz) {
	fmt.Fprintf(out, "\nQuiz: %s\n", quiz.Topic)
	for i, q := range quiz.Questions {
		fmt.Fprintf(out, "\nQ%d: %s\n", i+1, q.Question)
		for _, letter := range models.OptionLetters {
			fmt.Fprintf(out, "  %s. %s\n", letter, q.Options[letter])
		}
		fmt.Fprintf(out, "  Correct answer: %s\n", q.CorrectAnswer)
	}
}
