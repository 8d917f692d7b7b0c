package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/example/vocabot/internal/ai"
	"github.com/example/vocabot/internal/config"
	"github.com/example/vocabot/internal/database"
	"github.com/example/vocabot/internal/study"
	"github.com/example/vocabot/pkg/logger"
	"github.com/example/vocabot/pkg/models"
)

var (
	studyUserID     int64
	studyLanguageID int64
)

var studyCmd = &cobra.Command{
	Use:   "study",
	Short: "Run an interactive study session in the terminal",
	Long: `Drive a study session from stdin.

Each word is offered hidden first; reveal it, judge your recall, consult or
author hints, and mark words to skip. The session walks the catalog in word
order and honors your per-language settings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStudy(cmd.Context())
	},
}

func init() {
	studyCmd.Flags().Int64Var(&studyUserID, "user", 0, "user ID")
	studyCmd.Flags().Int64Var(&studyLanguageID, "language", 0, "language ID")
	_ = studyCmd.MarkFlagRequired("user")
	_ = studyCmd.MarkFlagRequired("language")
}

func runStudy(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel, cfg.LogFile)
	defer log.Sync()

	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := newStudyService(db, log)
	handle, err := svc.BeginSession(ctx, studyUserID, studyLanguageID)
	if err != nil {
		return err
	}
	defer svc.EndSession(ctx, handle)

	// Suggestions stay off without an API key.
	var suggester *ai.Suggester
	if s, err := ai.New(cfg); err == nil {
		suggester = s
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		word, err := svc.CurrentWord(ctx, handle)
		if err != nil {
			return err
		}
		if word == nil {
			fmt.Println("\nNothing left to study. Well done!")
			return nil
		}

		fmt.Printf("\n── Word %d ──\n%s\n", word.WordNumber, word.WordForeign)
		if done, err := wordLoop(ctx, svc, suggester, handle, word, scanner); err != nil || done {
			return err
		}
	}
}

// wordLoop reads commands until the session advances past the current word.
// It returns done=true when the user quits or stdin closes.
func wordLoop(ctx context.Context, svc *study.Service, suggester *ai.Suggester, handle string, word *models.Word, scanner *bufio.Scanner) (bool, error) {
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println("\n(input closed)")
			return true, scanner.Err()
		}
		fields := strings.Fields(strings.TrimSpace(scanner.Text()))
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "q", "quit":
			fmt.Println("Session ended.")
			return true, nil

		case "r", "reveal":
			revealed, err := svc.Reveal(ctx, handle)
			if reportOpError(err) {
				continue
			}
			fmt.Printf("  %s", revealed.Translation)
			if revealed.Transcription != "" {
				fmt.Printf("  [%s]", revealed.Transcription)
			}
			fmt.Println()

		case "0", "1":
			score := 0
			if fields[0] == "1" {
				score = 1
			}
			record, err := svc.RecordAnswer(ctx, handle, score)
			if reportOpError(err) {
				continue
			}
			fmt.Printf("Saved: score %d, next check in %d day(s)\n", record.Score, record.CheckInterval)
			return false, nil

		case "h", "hint":
			if len(fields) < 2 {
				fmt.Println("usage: h <" + hintTypeList() + ">")
				continue
			}
			text, err := svc.RecordHintUse(ctx, handle, models.HintType(fields[1]))
			if reportOpError(err) {
				continue
			}
			if text == nil {
				fmt.Println("(no hint saved for this word; answers now score 0 anyway)")
			} else {
				fmt.Printf("Hint: %s\n", *text)
			}

		case "e", "edit":
			if len(fields) < 2 {
				fmt.Println("usage: e <" + hintTypeList() + ">")
				continue
			}
			if err := editHint(ctx, svc, suggester, handle, word, models.HintType(fields[1]), scanner); err != nil {
				return false, err
			}

		case "s", "skip":
			record, err := svc.ToggleSkip(ctx, handle)
			if reportOpError(err) {
				continue
			}
			if record.IsSkipped {
				fmt.Println("Word marked as skipped.")
			} else {
				fmt.Println("Skip mark removed.")
			}

		default:
			printStudyHelp()
		}
	}
}

// editHint runs the hint authoring side trip: prompt for one line of text,
// empty input cancels.
func editHint(ctx context.Context, svc *study.Service, suggester *ai.Suggester, handle string, word *models.Word, hintType models.HintType, scanner *bufio.Scanner) error {
	existing, err := svc.BeginHintEdit(ctx, handle, hintType)
	if reportOpError(err) {
		return nil
	}
	if existing != nil {
		fmt.Printf("Current hint: %s\n", *existing)
	}
	if suggester != nil {
		if text, err := suggester.SuggestHint(ctx, word, hintType); err == nil {
			fmt.Printf("Suggestion: %s\n", text)
		} else {
			fmt.Printf("(suggestion unavailable: %v)\n", err)
		}
	}

	fmt.Print("New hint (empty line cancels): ")
	if !scanner.Scan() {
		return svc.CancelHintEdit(ctx, handle)
	}
	text := strings.TrimSpace(scanner.Text())
	if text == "" {
		if err := svc.CancelHintEdit(ctx, handle); err != nil {
			return err
		}
		fmt.Println("(unchanged)")
		return nil
	}

	if _, err := svc.SaveHint(ctx, handle, text); err != nil {
		return err
	}
	fmt.Println("Hint saved.")
	return nil
}

// reportOpError prints recoverable operation errors and reports whether one
// occurred. Invalid operations keep the loop going; the caller retries with
// a different command.
func reportOpError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, models.ErrInvalidSessionState) {
		fmt.Printf("Not now: %v\n", err)
	} else {
		fmt.Printf("Error: %v\n", err)
	}
	return true
}

func hintTypeList() string {
	names := make([]string, len(models.HintTypes))
	for i, t := range models.HintTypes {
		names[i] = string(t)
	}
	return strings.Join(names, "|")
}

func printStudyHelp() {
	fmt.Println("Commands:")
	fmt.Println("  r            reveal the word")
	fmt.Println("  1 / 0        answer: I knew it / I did not")
	fmt.Println("  h <type>     use a hint (" + hintTypeList() + ")")
	fmt.Println("  e <type>     create or edit a hint")
	fmt.Println("  s            toggle the skip mark")
	fmt.Println("  q            quit the session")
}
