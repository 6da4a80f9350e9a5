package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/notezapp/notez/internal/client/models"
	"github.com/notezapp/notez/internal/common"
)

var errNoSelection = errors.New("no note selected (use 'select <id>')")
var errNoAI = errors.New("AI backend not configured (set -ai or NOTEZ_AI_URL)")

func (a *App) hasSelection() bool {
	return a.store.Selected() != nil
}

// selected returns the currently selected note or reports the missing
// selection to the user.
func (a *App) selected() (*models.Note, error) {
	note := a.store.Selected()
	if note == nil {
		printlnFn(errNoSelection.Error())
		return nil, errNoSelection
	}
	return note, nil
}

func formatNote(n *models.Note) string {
	marker := " "
	if n.Pinned {
		marker = "*"
	}
	lock := ""
	if n.IsEncrypted {
		lock = " [locked]"
	}
	tags := ""
	if len(n.Tags) > 0 {
		tags = " #" + strings.Join(n.Tags, " #")
	}
	return fmt.Sprintf("%s %s  %s%s%s", marker, n.ID, n.Title, lock, tags)
}

func (a *App) List(ctx context.Context) error {
	notes := a.store.Notes()
	models.SortForDisplay(notes)
	if len(notes) == 0 {
		printlnFn("No notes yet. Use 'new' to create one.")
		return nil
	}
	for _, n := range notes {
		printlnFn(formatNote(n))
	}
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	var note *models.Note
	if len(args) > 0 {
		for _, n := range a.store.Notes() {
			if n.ID == args[0] {
				note = n
				break
			}
		}
		if note == nil {
			printlnFn("Note not found:", args[0])
			return common.ErrorNotFound
		}
	} else {
		var err error
		note, err = a.selected()
		if err != nil {
			return err
		}
	}

	printlnFn(formatNote(note))
	printlnFn("updated:", note.UpdatedAt.String())
	if note.IsEncrypted {
		printlnFn("(content is encrypted; use 'decrypt' to unlock)")
		return nil
	}
	printlnFn(note.Content)
	return nil
}

func (a *App) New(ctx context.Context) error {
	title, err := GetSimpleText(a.reader, "Title (empty for Untitled)", os.Stdout)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "Content", os.Stdout)
	if err != nil {
		return err
	}

	note := a.store.Add(ctx, models.Draft{Title: title, Content: content, Tags: []string{}})
	if note == nil {
		printlnFn("Note rejected: invalid draft")
		return common.ErrorValidation
	}

	a.store.SetSelected(ctx, note.ID)
	printlnFn("Created", note.ID)
	return nil
}

func (a *App) Edit(ctx context.Context) error {
	note, err := a.selected()
	if err != nil {
		return err
	}
	if note.IsEncrypted {
		printlnFn("Note is encrypted; decrypt it before editing.")
		return nil
	}

	title, err := GetSimpleText(a.reader, fmt.Sprintf("Title [%s] (empty keeps current)", note.Title), os.Stdout)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "Content (empty keeps current)", os.Stdout)
	if err != nil {
		return err
	}

	patch := models.Patch{}
	if title != "" {
		patch.Title = &title
	}
	if content != "" {
		patch.Content = &content
	}
	if patch.Title == nil && patch.Content == nil {
		printlnFn("Nothing to change.")
		return nil
	}

	a.store.Update(ctx, note.ID, patch)
	return nil
}

func (a *App) Select(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: select <id>")
		return nil
	}
	if !a.store.SetSelected(ctx, args[0]) {
		printlnFn("Note not found:", args[0])
		return common.ErrorNotFound
	}
	return nil
}

func (a *App) Unselect(ctx context.Context) error {
	a.store.ClearSelected(ctx)
	return nil
}

func (a *App) Delete(ctx context.Context) error {
	note, err := a.selected()
	if err != nil {
		return err
	}

	confirm, err := GetSimpleText(a.reader, fmt.Sprintf("Delete %q? (y/n)", note.Title), os.Stdout)
	if err != nil {
		return err
	}
	if confirm != "y" {
		printlnFn("Cancelled.")
		return nil
	}

	a.store.Delete(ctx, note.ID)
	printlnFn("Deleted", note.ID)
	return nil
}

func (a *App) Pin(ctx context.Context) error {
	note, err := a.selected()
	if err != nil {
		return err
	}
	a.store.TogglePin(ctx, note.ID)
	return nil
}

func (a *App) Tag(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: tag <tag>")
		return nil
	}
	note, err := a.selected()
	if err != nil {
		return err
	}
	a.store.AddTag(ctx, note.ID, args[0])
	return nil
}

func (a *App) Untag(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: untag <tag>")
		return nil
	}
	note, err := a.selected()
	if err != nil {
		return err
	}
	a.store.RemoveTag(ctx, note.ID, args[0])
	return nil
}

func (a *App) Encrypt(ctx context.Context) error {
	note, err := a.selected()
	if err != nil {
		return err
	}
	if note.IsEncrypted {
		printlnFn("Note is already encrypted.")
		return nil
	}

	pass, err := GetPassphrase(os.Stdout, "Enter passphrase")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pass)

	a.store.EncryptNote(ctx, note.ID, string(pass))
	printlnFn("Note locked.")
	return nil
}

func (a *App) Decrypt(ctx context.Context) error {
	note, err := a.selected()
	if err != nil {
		return err
	}
	if !note.IsEncrypted {
		printlnFn("Note is not encrypted.")
		return nil
	}

	pass, err := GetPassphrase(os.Stdout, "Enter passphrase")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pass)

	if !a.store.DecryptNote(ctx, note.ID, string(pass)) {
		printlnFn("Wrong passphrase.")
		return common.ErrDecryptionFailed
	}
	printlnFn("Note unlocked.")
	return nil
}

// aiText returns the content of the selected note, refusing encrypted notes
// so sealed text never leaves the machine.
func (a *App) aiText() (string, error) {
	if a.ai == nil {
		printlnFn(errNoAI.Error())
		return "", errNoAI
	}
	note, err := a.selected()
	if err != nil {
		return "", err
	}
	if note.IsEncrypted {
		printlnFn("Note is encrypted; decrypt it first.")
		return "", common.ErrDecryptionFailed
	}
	return note.Content, nil
}

func (a *App) Summary(ctx context.Context) error {
	text, err := a.aiText()
	if err != nil {
		return err
	}
	summary, err := a.ai.Summary(ctx, text)
	if err != nil {
		a.log.Error(ctx, "summary request failed", "error", err)
		return err
	}
	printlnFn(summary)
	return nil
}

func (a *App) SuggestTags(ctx context.Context) error {
	text, err := a.aiText()
	if err != nil {
		return err
	}
	tags, err := a.ai.SuggestTags(ctx, text)
	if err != nil {
		a.log.Error(ctx, "tag suggestion failed", "error", err)
		return err
	}
	printlnFn("Suggested tags:", strings.Join(tags, ", "))
	return nil
}

func (a *App) Grammar(ctx context.Context) error {
	text, err := a.aiText()
	if err != nil {
		return err
	}
	corrected, err := a.ai.CheckGrammar(ctx, text)
	if err != nil {
		a.log.Error(ctx, "grammar check failed", "error", err)
		return err
	}
	printlnFn(corrected)
	return nil
}

func (a *App) Translate(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: translate <language>")
		return nil
	}
	text, err := a.aiText()
	if err != nil {
		return err
	}
	translated, err := a.ai.Translate(ctx, text, args[0])
	if err != nil {
		a.log.Error(ctx, "translation failed", "error", err)
		return err
	}
	printlnFn(translated)
	return nil
}

func (a *App) Reload(ctx context.Context) error {
	a.store.Load(ctx)
	printlnFn("Reloaded.")
	return nil
}
