package guide

import "fmt"

// Title heads the startup instructions dialog.
const Title = "Instructions"

// Message is the one-line summary shown above the steps.
const Message = "To download a journal enter its ID and press Download."

// DontShowAgain labels the dialog checkbox.
const DontShowAgain = "Don't show again"

// Step represents one line of the startup instructions.
type Step struct {
	Title       string
	Description string
}

// Build returns the instructions tailored to the directory downloads land in.
func Build(downloadsDir string) []Step {
	if downloadsDir == "" {
		downloadsDir = "your downloads folder"
	}
	return []Step{
		{
			Title:       "Enter an ID",
			Description: "Type the journal issue number in the input field, for example 1234.",
		},
		{
			Title:       "Download",
			Description: fmt.Sprintf("Press Enter (or Tab to the Download button). The PDF is saved to %s.", downloadsDir),
		},
		{
			Title:       "View",
			Description: "Press ctrl+o to open the downloaded issue in your PDF viewer.",
		},
		{
			Title:       "Delete",
			Description: "Press ctrl+x to remove the file once you are done with it.",
		},
	}
}
