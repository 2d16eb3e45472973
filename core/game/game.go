// Package game holds the murder mystery played through the interpreter.
package game

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/afero"
)

var (
	ColorBoldBlue    = color.New(color.FgBlue, color.Bold)
	ColorBoldGreen   = color.New(color.FgGreen, color.Bold)
	ColorBoldCyan    = color.New(color.FgCyan, color.Bold)
	ColorBoldRed     = color.New(color.FgRed, color.Bold)
	ColorBoldYellow  = color.New(color.FgYellow, color.Bold)
	ColorBoldMagenta = color.New(color.FgMagenta, color.Bold)
)

const (
	suspectHint  = "No suspect by that name. Try: Tony, Victoria, Louie, Mickey, Eleanor, Sal"
	evidenceHint = "No evidence by that name. Try: ledger, ballistics, witness, forensics, hotel_key, tox_report"
)

// State is the progress of one game.
type State struct {
	// Location indexes Locations.
	Location int `json:"location"`
	// Progress counts the clues uncovered, it indexes Clues.
	Progress      int    `json:"progress"`
	EvidenceFound int    `json:"evidence_found"`
	Interviewed   []bool `json:"interviewed"`
	// Over is set once an accusation has been made.
	Over bool `json:"over"`
}

// NewState starts a game at the police station.
func NewState() *State {
	return &State{
		Interviewed: make([]bool, len(Suspects)),
	}
}

// CurrentLocation is the name of the detective's location.
func (s *State) CurrentLocation() string {
	return Locations[s.Location%len(Locations)]
}

func (s *State) interviewed(i int) bool {
	return i < len(s.Interviewed) && s.Interviewed[i]
}

func (s *State) markInterviewed(i int) {
	for len(s.Interviewed) < len(Suspects) {
		s.Interviewed = append(s.Interviewed, false)
	}
	s.Interviewed[i] = true
}

// FindSuspect returns the index of the first suspect whose name contains
// query, or -1.
func FindSuspect(query string) int {
	if query == "" {
		return -1
	}
	for i, suspect := range Suspects {
		if strings.Contains(suspect.Name, query) {
			return i
		}
	}
	return -1
}

// FindLocation returns the index of the first location whose name contains
// query, or -1.
func FindLocation(query string) int {
	if query == "" {
		return -1
	}
	for i, location := range Locations {
		if strings.Contains(location, query) {
			return i
		}
	}
	return -1
}

// Welcome prints the opening of the case.
func Welcome(w io.Writer) {
	fmt.Fprintln(w)
	ColorBoldBlue.Fprintln(w, "========================================")
	ColorBoldBlue.Fprintln(w, "         LA NOIRE MURDER MYSTERY         ")
	ColorBoldBlue.Fprintln(w, "========================================")
	fmt.Fprintln(w, "October 1947. A gunshot echoes through")
	fmt.Fprintln(w, "the foggy streets. Another body in the")
	fmt.Fprintln(w, "war between the gangs and the vice lords.")
	fmt.Fprintln(w)
	ColorBoldRed.Fprintf(w, "VICTIM: %s\n", victim)
	ColorBoldYellow.Fprintln(w, "SUSPECTS:")
	for _, suspect := range Suspects {
		fmt.Fprintf(w, "- %s (%s)\n", suspect.Name, suspect.Occupation)
	}
	ColorBoldBlue.Fprintln(w, "========================================")
	fmt.Fprintln(w)
}

// Investigate uncovers the next clue and files it in the case directory.
func (s *State) Investigate(w io.Writer, files afero.Fs) error {
	if s.Progress >= len(Clues) {
		fmt.Fprintln(w, "The trail has gone cold, every clue has been found.")
		return nil
	}

	clue := Clues[s.Progress]
	if err := afero.WriteFile(files, clue.File, []byte(clue.Contents), 0644); err != nil {
		return fmt.Errorf("creating %s: %w", clue.File, err)
	}

	fmt.Fprintln(w)
	ColorBoldYellow.Fprintln(w, "=== Crime Scene Report ===")
	fmt.Fprintf(w, clue.Report+"\n", clue.Discovery)
	ColorBoldYellow.Fprintln(w, "=========================")
	fmt.Fprintln(w)

	s.Progress++
	s.EvidenceFound++
	if s.Progress >= len(Clues) {
		ColorBoldGreen.Fprintln(w, "You've found all the evidence! Time to accuse a suspect.")
	}
	return nil
}

// Interview questions a suspect, who must be at the detective's location.
func (s *State) Interview(w io.Writer, query string) {
	found := FindSuspect(query)
	if found < 0 {
		fmt.Fprintln(w, suspectHint)
		return
	}

	suspect := Suspects[found]
	if s.CurrentLocation() != suspect.Location {
		fmt.Fprintf(w, "\n%s isn't here. Try 'whereis %s' to find them.\n", suspect.Name, query)
		return
	}

	fmt.Fprintln(w)
	ColorBoldCyan.Fprintf(w, "%s's responses:\n", suspect.Name)
	for _, response := range suspect.Responses {
		fmt.Fprintf(w, "- %s\n", response)
	}

	if found == culprit {
		ColorBoldRed.Fprintln(w, "You notice her hands shaking...")
	}

	if !s.interviewed(found) {
		s.markInterviewed(found)
		fmt.Fprintln(w)
		ColorBoldGreen.Fprintln(w, "(New information added to your notes)")
		if suspect.Note != "" {
			ColorBoldYellow.Fprintln(w, suspect.Note)
		}
	}
}

// Examine prints a piece of evidence from the case directory.
func Examine(w io.Writer, files afero.Fs, item string) error {
	for _, evidence := range Evidence {
		if evidence.Name != item {
			continue
		}

		contents, err := afero.ReadFile(files, item+".txt")
		if err != nil {
			return err
		}

		fmt.Fprintln(w, string(contents))
		fmt.Fprintln(w)
		ColorBoldYellow.Fprintln(w, evidence.Note)
		return nil
	}

	fmt.Fprintln(w, evidenceHint)
	return nil
}

// Move travels to the first location matching query.
func (s *State) Move(w io.Writer, query string) {
	found := FindLocation(query)
	if found < 0 {
		fmt.Fprintf(w, "Invalid location. Choose from: %s\n", strings.Join(Locations, ", "))
		return
	}

	s.Location = found
	fmt.Fprintf(w, "\nMoved to %s\n", s.CurrentLocation())

	fmt.Fprintln(w, "\nPeople here:")
	anyoneHere := false
	for _, suspect := range Suspects {
		if suspect.Location == s.CurrentLocation() {
			fmt.Fprintf(w, "- %s\n", suspect.Name)
			anyoneHere = true
		}
	}
	if !anyoneHere {
		fmt.Fprintln(w, "No suspects present")
	}

	switch found {
	case locationRooseveltHotel:
		fmt.Fprintln(w)
		ColorBoldYellow.Fprintln(w, "(A worn ledger sits at the front desk)")
	case locationCityMorgue:
		fmt.Fprintln(w)
		ColorBoldYellow.Fprintln(w, "(The smell of antiseptic hangs in the air)")
	}
}

// Whereis reports where a suspect can be found.
func Whereis(w io.Writer, query string) {
	found := FindSuspect(query)
	if found < 0 {
		fmt.Fprintln(w, suspectHint)
		return
	}

	suspect := Suspects[found]
	fmt.Fprintf(w, "\n%s is at the %s\n", suspect.Name, suspect.Location)
}

// Status summarizes the case.
func (s *State) Status(w io.Writer) {
	fmt.Fprintln(w)
	ColorBoldMagenta.Fprintln(w, "=== CASE STATUS ===")
	fmt.Fprintf(w, "Evidence found: %d/%d\n", s.EvidenceFound, len(Clues))
	fmt.Fprintln(w, "Suspects interviewed:")
	for i, suspect := range Suspects {
		status := "Not interviewed"
		if s.interviewed(i) {
			status = "Interviewed"
		}
		fmt.Fprintf(w, "- %s: %s\n", suspect.Name, status)
	}
	fmt.Fprintln(w, "\nUse 'examine' to review evidence files")
	ColorBoldMagenta.Fprintln(w, "==================")
	fmt.Fprintln(w)
}

// Accuse ends the game, it reports whether the accused is the culprit.
func (s *State) Accuse(w io.Writer, query string) bool {
	s.Over = true

	if FindSuspect(query) != culprit {
		fmt.Fprintln(w)
		ColorBoldRed.Fprintln(w, "**** CASE CLOSED - UNSOLVED ****")
		ColorBoldRed.Fprintln(w, "The real killer walks free...")
		ColorBoldRed.Fprintln(w, "Internal Affairs has suspended you.")
		return false
	}

	fmt.Fprintln(w)
	ColorBoldGreen.Fprintln(w, "**** CASE SOLVED ****")
	ColorBoldGreen.Fprintf(w, "%s confesses!\n\n", Suspects[culprit].Name)
	ColorBoldGreen.Fprintf(w, "Weapon: %s\n", weapon)
	ColorBoldGreen.Fprintf(w, "Motive: %s\n", motive)
	ColorBoldGreen.Fprintln(w, "\nThe Chief hands you your gold detective shield.")
	return true
}
