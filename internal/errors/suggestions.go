package errors

// suggestions is ordered: the first sentinel matched in an error's chain
// supplies the hint.
var suggestions = []struct {
	err  error
	hint string
}{
	{ErrEmptyName, "Type a task name first."},
	{ErrMissingDay, "Pick a day with --day, e.g. --day monday or --day tomorrow."},
	{ErrDuplicateName, "Task names must be unique. Use 'weekly rename' or pick another name."},
	{ErrInvalidDay, "Days are monday..sunday, 0..6, or a date like 'next friday'."},
	{ErrInvalidPriority, "Priorities are 1 (high), 2 (medium) or 3 (low)."},
	{ErrNothingToUndo, "Only the last change can be undone."},

	{ErrCorruptData, "Run 'weekly reset --force' to back up the raw data and start over."},
	{ErrUnsupportedVersion, "This data was written by a newer weekly. Upgrade to read it."},
	{ErrDiskFull, "Free up disk space and try again."},
	{ErrLockHeld, "Another weekly instance is running. Close it and try again."},
	{ErrPermissionDenied, "Check file permissions in your data directory (~/.local/share/weekly/)."},
	{ErrUnknownBackend, "Set storage.backend to 'badger' or 'sqlite'."},
	{ErrConfirmationMissing, "Pass --force to confirm."},
}

func suggestionFor(err error) string {
	for _, s := range suggestions {
		if Is(err, s.err) {
			return s.hint
		}
	}
	return ""
}

// GetSuggestion returns the hint to print under err. A UserError's own
// suggestion wins over the table.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}
	if ue, ok := AsUserError(err); ok && ue.Suggestion != "" {
		return ue.Suggestion
	}
	return suggestionFor(err)
}
