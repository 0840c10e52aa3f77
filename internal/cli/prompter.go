package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/lunabrook/moodscope/internal/checkin"
	"github.com/lunabrook/moodscope/internal/model"
)

// Prompter drives an interactive check-in at the terminal, walking the
// session through photo, voice, and notes.
type Prompter struct {
	reader *NonBlockingReader
	writer io.Writer
}

// NewPrompter creates a prompter with the given reader and writer. Nil
// arguments fall back to stdin and stdout.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}

	return &Prompter{
		reader: NewNonBlockingReader(reader),
		writer: writer,
	}
}

// Run collects the check-in inputs interactively and submits the session.
// Entering "b" at any prompt steps back one stage; the data from the stage
// being left is discarded.
func (p *Prompter) Run(ctx context.Context, session *checkin.Session) (*model.EmotionAnalysis, error) {
	for {
		switch session.State() {
		case checkin.StateAwaitingPhoto:
			if err := p.promptPhoto(ctx, session); err != nil {
				return nil, err
			}
		case checkin.StateAwaitingVoice:
			if err := p.promptVoice(ctx, session); err != nil {
				return nil, err
			}
		case checkin.StateAwaitingNotes:
			if err := p.promptNotes(ctx, session); err != nil {
				return nil, err
			}
			// Entering "b" steps back to the voice prompt; only submit
			// once the notes stage has actually been completed.
			if session.State() != checkin.StateAwaitingNotes {
				continue
			}
			return session.Submit(ctx)
		default:
			return nil, fmt.Errorf("unexpected session state: %s", session.State())
		}
	}
}

func (p *Prompter) promptPhoto(ctx context.Context, session *checkin.Session) error {
	fmt.Fprintln(p.writer, TitleStyle.Render("📷 Photo"))
	path, err := p.promptLine(ctx, "Path to your selfie")
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path) //nolint:gosec // user-supplied path is the point
	if err != nil {
		fmt.Fprintln(p.writer, ErrorStyle.Render(fmt.Sprintf("Could not read %s: %v", path, err)))
		return nil
	}
	return session.SubmitPhoto(data)
}

func (p *Prompter) promptVoice(ctx context.Context, session *checkin.Session) error {
	fmt.Fprintln(p.writer, TitleStyle.Render("🎤 Voice note (optional)"))
	input, err := p.promptLine(ctx, "Path to an audio clip, or press enter to skip")
	if err != nil {
		return err
	}

	switch input {
	case "":
		return session.SkipVoice()
	case "b":
		return session.GoBack()
	default:
		return session.SubmitVoice(input)
	}
}

func (p *Prompter) promptNotes(ctx context.Context, session *checkin.Session) error {
	fmt.Fprintln(p.writer, TitleStyle.Render("📝 Notes (optional)"))
	input, err := p.promptLine(ctx, "Anything on your mind, or press enter to skip")
	if err != nil {
		return err
	}

	if input == "b" {
		return session.GoBack()
	}
	return session.SetNotes(input)
}

func (p *Prompter) promptLine(ctx context.Context, prompt string) (string, error) {
	fmt.Fprintf(p.writer, "%s ", BoldStyle.Render(prompt+":"))
	return p.reader.ReadLine(ctx)
}
