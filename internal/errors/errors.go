package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/onething/internal/logger"
	"github.com/julianstephens/onething/internal/storage"
	"github.com/julianstephens/onething/internal/summarizer"
	"github.com/julianstephens/onething/internal/synthesis"
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}


// Describe turns store and synthesis errors into text meant for the user.
// Errors it does not recognise are returned as their message.
func Describe(err error) string {
	var genErr *synthesis.GenerationError

	switch {
	case err == nil:
		return ""
	case stderrors.Is(err, synthesis.ErrAlreadyGenerated):
		return "A reflection has already been generated for this month."
	case stderrors.Is(err, synthesis.ErrLocked):
		return "This month is still locked. Keep answering to unlock a reflection."
	case stderrors.Is(err, synthesis.ErrGenerationInProgress):
		return "A reflection for this month is already being generated."
	case stderrors.Is(err, summarizer.ErrMissingCredential):
		return "No API key is configured. Run 'onething keyring set' or set the provider's API key variable."
	case stderrors.As(err, &genErr):
		return fmt.Sprintf("Could not generate a reflection because %s. Nothing was saved, please try again.", genErr.Reason)
	case stderrors.Is(err, storage.ErrNotFound):
		return "Nothing has been saved for that date yet."
	case stderrors.Is(err, storage.ErrNotLoaded):
		return "Storage is not initialized. Run 'onething init' first."
	default:
		return err.Error()
	}
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %s\n", Describe(err))
		os.Exit(1)
	}
}
