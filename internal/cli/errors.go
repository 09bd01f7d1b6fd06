package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/venvlink/venvlink/internal/config"
	"github.com/venvlink/venvlink/internal/linker"
	"github.com/venvlink/venvlink/internal/prompt"
)

// printError reports err once on w, with a tip where there is an obvious fix.
func printError(w io.Writer, err error) {
	st := prompt.NewStyles(w)

	if errors.Is(err, linker.ErrDeclined) {
		fmt.Fprintln(w, st.Error.Render("Aborted."))
		return
	}

	fmt.Fprintln(w, st.Error.Render("Error: "+err.Error()))

	var ve *config.ValidationError
	switch {
	case errors.Is(err, linker.ErrStoreMissing):
		fmt.Fprintln(w, st.Tip.Render("Tip: create it"))
	case errors.As(err, &ve):
		fmt.Fprintln(w, st.Tip.Render("Tip: fix or remove "+ve.Path))
	}
}
