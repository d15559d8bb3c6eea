package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"

	"github.com/open-season/openseason/internal/configs"
	kerrors "github.com/open-season/openseason/internal/errors"
	"github.com/open-season/openseason/internal/ui"
	"github.com/open-season/openseason/internal/utils"
	"github.com/open-season/openseason/internal/workflows"
)

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// automatically calls ui.EnsureNewline() on the final message before printing it.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message
	s.Writer = os.Stderr

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	if !verbose && !debug {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if !verbose && !debug {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if !verbose && !debug {
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// pauseSpinner stops s while fn runs, e.g. around a password prompt.
func pauseSpinner(s *spinner.Spinner, fn func() error) error {
	if s != nil && s.Active() {
		s.Stop()
		defer s.Start()
	}
	return fn()
}

// readVaultPassword reads the password from the environment or the
// terminal. A vault without a salt yet is being created, so an interactive
// user is asked to type the password twice.
func readVaultPassword(s *spinner.Spinner) ([]byte, error) {
	var password []byte
	err := pauseSpinner(s, func() error {
		var err error
		password, err = utils.ReadPassword("Vault password: ")
		if err != nil {
			return err
		}

		if _, fromEnv := os.LookupEnv(utils.PasswordEnv); fromEnv {
			return nil
		}
		exists, err := utils.FileExists(configs.VaultSettings.SaltPath)
		if err != nil || exists {
			return err
		}

		confirm, err := utils.ReadPassword("Confirm new vault password: ")
		if err != nil {
			return err
		}
		defer clear(confirm)
		if string(confirm) != string(password) {
			clear(password)
			return errPasswordMismatch
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return password, nil
}

var errPasswordMismatch = errors.New("passwords do not match")

// unlockSession derives the session key into keyStore for the duration of
// the current command. The returned release func clears it again.
func unlockSession(s *spinner.Spinner) (*workflows.UnlockResult, func(), error) {
	password, err := readVaultPassword(s)
	if err != nil {
		return nil, func() {}, err
	}
	defer clear(password)

	Logger.Debugf("Deriving session key")
	result, err := workflows.Unlock(context.Background(), keyStore, workflows.UnlockOptions{Password: password})
	if err != nil {
		return nil, func() {}, err
	}
	Logger.Infof("Vault unlocked")

	if result.WeakPassword {
		_ = pauseSpinner(s, func() error {
			Logger.Warnf("The new vault password is weak (strength %d/4). Evidence is only as safe as this password.", result.PasswordScore)
			return nil
		})
	}

	return result, keyStore.Clear, nil
}

// formatError turns a workflow error into the spinner's final message.
func formatError(action string, err error) string {
	cross := ui.Error.Sprint("✗") + " "
	hint := "\n" + ui.Info.Sprint("→") + " "

	switch {
	case errors.Is(err, errPasswordMismatch):
		return cross + "Passwords do not match, the vault was not created"

	case errors.Is(err, kerrors.ErrVaultLocked):
		return cross + "The vault is locked" +
			hint + "Supply the password on the terminal or via " + ui.Code.Sprint(utils.PasswordEnv)

	case errors.Is(err, kerrors.ErrInvalidSalt):
		return cross + "The vault salt at " + ui.Path.Sprint(configs.VaultSettings.SaltPath) + " is corrupted" +
			hint + "Restore it from a backup. It is never regenerated, since that would orphan all existing evidence"

	case errors.Is(err, kerrors.ErrDerivationFailed):
		return cross + "Could not derive the session key: " + err.Error()

	case errors.Is(err, kerrors.ErrDecryptFailed):
		return cross + "Could not decrypt the evidence: wrong password or corrupted data"

	case errors.Is(err, kerrors.ErrCaseNotFound):
		return cross + capitalize(err.Error()) +
			hint + "Run " + ui.Code.Sprint("openseason hunt list") + " to see available hunts"

	case errors.Is(err, kerrors.ErrCaseAlreadyExists):
		return cross + capitalize(err.Error()) +
			hint + "Rename the archive file to import it under a different id"

	case errors.Is(err, kerrors.ErrInvalidCaseName),
		errors.Is(err, kerrors.ErrEvidenceNotFound),
		errors.Is(err, kerrors.ErrFileNotFound),
		errors.Is(err, kerrors.ErrNoFilesFound),
		errors.Is(err, kerrors.ErrInvalidArchive),
		errors.Is(err, kerrors.ErrPathEncoding),
		errors.Is(err, kerrors.ErrOutputExists),
		errors.Is(err, kerrors.ErrInvalidDateFormat):
		return cross + capitalize(err.Error())

	default:
		return cross + "Failed to " + action + ": " + err.Error()
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// isUnexpectedError returns true if the error is unexpected and should cause a non-zero exit.
func isUnexpectedError(err error) bool {
	switch {
	case errors.Is(err, errPasswordMismatch),
		errors.Is(err, kerrors.ErrVaultLocked),
		errors.Is(err, kerrors.ErrDecryptFailed),
		errors.Is(err, kerrors.ErrCaseNotFound),
		errors.Is(err, kerrors.ErrCaseAlreadyExists),
		errors.Is(err, kerrors.ErrInvalidCaseName),
		errors.Is(err, kerrors.ErrEvidenceNotFound),
		errors.Is(err, kerrors.ErrFileNotFound),
		errors.Is(err, kerrors.ErrNoFilesFound),
		errors.Is(err, kerrors.ErrInvalidArchive),
		errors.Is(err, kerrors.ErrPathEncoding),
		errors.Is(err, kerrors.ErrOutputExists),
		errors.Is(err, kerrors.ErrInvalidDateFormat):
		return false
	default:
		return true
	}
}

// fail sets the spinner's final message for err and decides the exit status.
func fail(s *spinner.Spinner, action string, err error) error {
	Logger.Debugf("%s failed: %v", action, err)
	s.FinalMSG = formatError(action, err)
	if isUnexpectedError(err) {
		return err
	}
	return nil
}
