package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"ikill/cmd/ikill/corpus"
)

// confirmKill shows a yes/no form listing the selected names. Aborting the
// form counts as a no.
func confirmKill(ctx context.Context, sel corpus.Selection) (bool, error) {
	ok := false
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Kill %d process(es)?", sel.Len())).
			Description(strings.Join(sel.Names(), ", ")).
			Affirmative("Kill").
			Negative("Cancel").
			Value(&ok),
	))
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, fmt.Errorf("confirm: %w", err)
	}
	return ok, nil
}
